// internal/bot/handlers.go
package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// menuCommands maps the persistent reply keyboard to the command each button
// stands for, so buttons pass through the same gate as slash commands.
var menuCommands = map[string]string{
	"📋 Мій план":             "myplan",
	"📈 Прогрес":              "progress",
	"🍽 Щоденник харчування":  "meal",
	"🏆 Спільнота":            "community",
	"🛠 Інструменти":          "tools",
	"💬 Чат з тренером":       "chat",
}

func (t *TelegramBot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	// Posts in the community group only mark membership.
	if t.groupID != 0 && message.Chat.ID == t.groupID {
		if err := t.db.SetUserInGroup(ctx, message.From.ID); err != nil {
			t.logger.Errorf("mark user %d in group: %v", message.From.ID, err)
		}
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	if _, err := t.db.EnsureUser(ctx, userID, message.From.UserName, message.From.FirstName+" "+message.From.LastName); err != nil {
		t.logger.Errorf("ensure user %d: %v", userID, err)
	}

	if message.IsCommand() {
		t.handleCommand(ctx, message)
		return
	}

	if command, ok := menuCommands[message.Text]; ok {
		if !t.checkAccess(ctx, userID, chatID, command) {
			return
		}
		t.handleMenuButton(ctx, message, command)
		return
	}

	// Plain text and media are gated too: an expired trial must not keep a
	// running chat or meal dialog alive.
	if !t.checkAccess(ctx, userID, chatID, "") {
		t.sessions.Clear(userID)
		return
	}

	session := t.sessions.Get(userID)
	if session == nil {
		t.sendWithKeyboard(chatID, "Обери дію з меню або скористайся /help.", mainMenuKeyboard())
		return
	}

	if (message.Video != nil || len(message.Photo) > 0) && session.State == StateAwaitProofVideo {
		t.handleProofMedia(ctx, message, session)
		return
	}
	if len(message.Photo) > 0 && session.State == StateAwaitResultPhoto {
		t.handleResultPhoto(ctx, message, session)
		return
	}

	t.handleStateMessage(ctx, message, session)
}

func (t *TelegramBot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	userID := message.From.ID
	chatID := message.Chat.ID

	t.logger.Infof("Handling command /%s from %d", command, userID)

	if !t.checkAccess(ctx, userID, chatID, command) {
		return
	}

	// Commands always abandon any conversation in progress.
	t.sessions.Clear(userID)

	switch command {
	case "start":
		t.handleStart(ctx, message)
	case "newplan":
		t.startOnboarding(chatID, userID)
	case "myplan":
		t.handleMyPlan(ctx, userID, chatID)
	case "progress":
		t.handleProgress(ctx, userID, chatID)
	case "achievements":
		t.handleAchievements(ctx, userID, chatID)
	case "tip":
		t.handleTip(ctx, chatID)
	case "food":
		t.startRecipe(userID, chatID)
	case "summary":
		t.handleDailySummary(ctx, userID, chatID)
	case "stop_chat":
		t.sendWithKeyboard(chatID, "Чат з тренером завершено. Повертаємось до меню.", mainMenuKeyboard())
	case "cancel":
		t.sendWithKeyboard(chatID, "Скасовано. Повертаємось до меню.", mainMenuKeyboard())
	case "subscribe":
		t.handleSubscribe(chatID)
	case "duel":
		t.startDuel(userID, chatID, message.CommandArguments())
	case "grant":
		t.handleGrant(ctx, userID, chatID, message.CommandArguments())
	case "delete_challenge":
		t.handleDeleteChallenge(ctx, userID, chatID, message.CommandArguments())
	case "help":
		t.handleHelp(chatID)
	default:
		t.sendText(chatID, "Невідома команда. Скористайся /help, щоб побачити список команд.")
	}
}

func (t *TelegramBot) handleMenuButton(ctx context.Context, message *tgbotapi.Message, command string) {
	userID := message.From.ID
	chatID := message.Chat.ID
	t.sessions.Clear(userID)

	switch command {
	case "myplan":
		t.handleMyPlan(ctx, userID, chatID)
	case "progress":
		t.handleProgress(ctx, userID, chatID)
	case "meal":
		t.startMealLog(userID, chatID)
	case "community":
		t.sendWithKeyboard(chatID, "🏆 Спільнота: обирай, чим займемось.", communityMenuKeyboard())
	case "tools":
		t.sendWithKeyboard(chatID, "🛠 Корисні інструменти:", toolsMenuKeyboard())
	case "chat":
		t.startChat(userID, chatID)
	}
}

// handleStateMessage routes free text to the conversation the user is in.
func (t *TelegramBot) handleStateMessage(ctx context.Context, message *tgbotapi.Message, session *Session) {
	switch {
	case strings.HasPrefix(session.State, "onboarding_"):
		t.handleOnboardingStep(ctx, message, session)
	case strings.HasPrefix(session.State, "calc_"):
		t.handleCalculatorStep(ctx, message, session)
	case session.State == StateMealLog:
		t.handleMealDescription(ctx, message, session)
	case session.State == StateChat:
		t.handleChatMessage(ctx, message, session)
	case session.State == StateFoodProducts:
		t.handleRecipeProducts(ctx, message, session)
	case session.State == StateReminderBreakfast,
		session.State == StateReminderLunch,
		session.State == StateReminderDinner:
		t.handleReminderStep(ctx, message, session)
	case session.State == StateChallengeTitle,
		session.State == StateChallengeDesc,
		session.State == StateChallengeDuration:
		t.handleChallengeCreateStep(ctx, message, session)
	case session.State == StateDuelOpponent,
		session.State == StateDuelDescription:
		t.handleDuelStep(ctx, message, session)
	case session.State == StateFeedbackComment:
		t.handleFeedbackComment(ctx, message, session)
	case session.State == StateAwaitProofVideo:
		t.sendText(message.Chat.ID, "Чекаю на доказ. Надішли фото чи відео, або скористайся командою з меню, щоб вийти.")
	case session.State == StateAwaitResultPhoto:
		t.sendText(message.Chat.ID, "Надішли фото свого результату або обери іншу дію з меню.")
	default:
		t.sessions.Clear(message.From.ID)
		t.sendWithKeyboard(message.Chat.ID, "Щось пішло не так. Почнімо з меню.", mainMenuKeyboard())
	}
}

func (t *TelegramBot) handleCallbackQuery(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	t.answerCallback(cq.ID)

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID
	data := cq.Data

	t.logger.Infof("Callback %q from %d", data, userID)

	switch {
	case data == "workout_done":
		t.handleWorkoutDone(ctx, userID, chatID)
	case strings.HasPrefix(data, "feedback_rate_"):
		rating, _ := strconv.Atoi(strings.TrimPrefix(data, "feedback_rate_"))
		t.handleFeedbackRating(userID, chatID, rating)
	case data == "meal_confirm":
		t.handleMealConfirm(ctx, userID, chatID)
	case data == "meal_cancel":
		t.handleMealCancel(userID, chatID)
	case data == "challenges_list":
		t.handleChallengesList(ctx, chatID)
	case data == "challenge_create":
		t.startChallengeCreate(userID, chatID)
	case strings.HasPrefix(data, "challenge_view_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "challenge_view_"), 10, 64)
		t.handleChallengeView(ctx, userID, chatID, id)
	case strings.HasPrefix(data, "challenge_join_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "challenge_join_"), 10, 64)
		t.handleChallengeJoin(ctx, userID, chatID, id)
	case strings.HasPrefix(data, "challenge_do_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "challenge_do_"), 10, 64)
		t.handleChallengeDo(ctx, userID, chatID, id)
	case data == "duel_start":
		t.startDuel(userID, chatID, "")
	case strings.HasPrefix(data, "duel_accept_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "duel_accept_"), 10, 64)
		t.handleDuelAccept(ctx, userID, chatID, id)
	case strings.HasPrefix(data, "duel_reject_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "duel_reject_"), 10, 64)
		t.handleDuelReject(ctx, userID, chatID, id)
	case strings.HasPrefix(data, "duel_proof_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "duel_proof_"), 10, 64)
		t.startProofUpload(userID, chatID, id)
	case data == "share_result":
		t.startShareResult(userID, chatID)
	case data == "my_results":
		t.handleMyResults(ctx, userID, chatID)
	case data == "tool_calories":
		t.startCalorieCalculator(userID, chatID)
	case data == "tool_reminders":
		t.startReminderSetup(userID, chatID)
	case data == "tool_recipe":
		t.startRecipe(userID, chatID)
	case data == "tool_tip":
		t.handleTip(ctx, chatID)
	case data == "tool_activity":
		t.sendWithKeyboard(chatID, "Який у тебе сьогодні рівень активності поза тренуваннями?", activityLevelKeyboard())
	case strings.HasPrefix(data, "activity_"):
		t.handleActivityLevel(ctx, userID, chatID, strings.TrimPrefix(data, "activity_"))
	case data == "initiate_payment":
		t.handleInitiatePayment(ctx, userID, chatID)
	case data == "stripe_payment":
		t.handleStripePayment(userID, chatID)
	case data == "user_confirm_payment":
		t.handleUserConfirmPayment(ctx, userID, chatID, cq.From.UserName)
	case strings.HasPrefix(data, "admin_confirm_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "admin_confirm_"), 10, 64)
		t.handleAdminConfirmPayment(ctx, userID, chatID, id)
	case strings.HasPrefix(data, "admin_reject_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "admin_reject_"), 10, 64)
		t.handleAdminRejectPayment(ctx, userID, chatID, id)
	default:
		t.logger.Warnf("unhandled callback %q", data)
	}
}

func (t *TelegramBot) handleHelp(chatID int64) {
	help := "Я твій AI фітнес-тренер. Ось що я вмію:\n\n" +
		"/start - почати роботу та анкету\n" +
		"/newplan - створити новий план тренувань\n" +
		"/myplan - показати поточний план\n" +
		"/progress - статистика тренувань\n" +
		"/achievements - твої нагороди\n" +
		"/summary - підсумок харчування за день\n" +
		"/food - рецепт з твоїх продуктів\n" +
		"/tip - фітнес-порада\n" +
		"/duel @username - викликати на дуель\n" +
		"/subscribe - оформити підписку\n" +
		"/stop_chat - завершити чат з тренером\n" +
		"/cancel - скасувати поточний діалог"
	t.sendWithKeyboard(chatID, help, mainMenuKeyboard())
}
