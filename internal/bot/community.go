// internal/bot/community.go
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

const (
	minChallengeDays = 1
	maxChallengeDays = 100
)

func challengeExpiryID(challengeID int64) string {
	return fmt.Sprintf("delete_challenge_%d", challengeID)
}

func challengeExpiresAt(c models.Challenge) time.Time {
	return c.CreatedAt.Add(time.Duration(c.DurationDays) * 24 * time.Hour)
}

// challengeDayOutcome returns the counter value after a proven day and
// whether it finishes the challenge. There is no per-day cap: every accepted
// proof counts.
func challengeDayOutcome(progressDays, durationDays int) (int, bool) {
	done := progressDays + 1
	return done, done >= durationDays
}

// Duel transition guards, kept as pure functions over the stored row so the
// lifecycle rules live in one place.

// canRespondToDuel admits accept/reject only from the challenged side of a
// still-pending duel.
func canRespondToDuel(d *models.Duel, userID int64) bool {
	return d != nil && d.OpponentID == userID && d.Status == models.DuelPending
}

// validDuelOpponent rejects challenging yourself.
func validDuelOpponent(initiatorID int64, opponent *models.User) bool {
	return opponent != nil && opponent.ID != initiatorID
}

type proofVerdict int

const (
	proofDuelInactive proofVerdict = iota
	proofNotParticipant
	proofAccepted
)

// duelProofVerdict decides whether a proof submission counts: the duel must
// be active and the submitter one of the two participants. A third proof
// after completion lands in proofDuelInactive.
func duelProofVerdict(d *models.Duel, userID int64) proofVerdict {
	if d == nil || d.Status != models.DuelActive {
		return proofDuelInactive
	}
	if d.InitiatorID != userID && d.OpponentID != userID {
		return proofNotParticipant
	}
	return proofAccepted
}

func duelFinished(d *models.Duel) bool {
	return d != nil && d.InitiatorCompleted && d.OpponentCompleted
}

func (t *TelegramBot) handleChallengesList(ctx context.Context, chatID int64) {
	challenges, err := t.db.GetActiveChallenges(ctx)
	if err != nil {
		t.logger.Errorf("list challenges: %v", err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	if len(challenges) == 0 {
		t.sendWithKeyboard(chatID, "Активних челенджів поки немає. Створи свій!", communityMenuKeyboard())
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(challenges))
	for _, c := range challenges {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🎯 %s (%d дн.)", c.Title, c.DurationDays),
				fmt.Sprintf("challenge_view_%d", c.ID)),
		))
	}
	t.sendWithKeyboard(chatID, "Обери челендж:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (t *TelegramBot) handleChallengeView(ctx context.Context, userID, chatID, challengeID int64) {
	c, err := t.db.GetChallenge(ctx, challengeID)
	if err != nil {
		t.logger.Errorf("get challenge %d: %v", challengeID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	if c == nil {
		t.sendText(chatID, "Цей челендж уже завершився.")
		return
	}

	text := fmt.Sprintf("🎯 *%s*\n\n%s\n\nТривалість: %d днів", c.Title, c.Description, c.DurationDays)
	if p, err := t.db.GetChallengeProgress(ctx, userID, challengeID); err == nil && p != nil {
		text += fmt.Sprintf("\nТвій прогрес: %d/%d днів", p.ProgressDays, c.DurationDays)
	}
	t.sendMarkdownWithKeyboard(chatID, text, challengeViewKeyboard(challengeID))
}

func (t *TelegramBot) handleChallengeJoin(ctx context.Context, userID, chatID, challengeID int64) {
	c, err := t.db.GetChallenge(ctx, challengeID)
	if err != nil || c == nil {
		t.sendText(chatID, "Цей челендж уже недоступний.")
		return
	}
	if err := t.db.JoinChallenge(ctx, userID, challengeID); err != nil {
		t.logger.Errorf("join challenge %d for %d: %v", challengeID, userID, err)
		t.sendText(chatID, "Не вдалося долучитися. Спробуй ще раз.")
		return
	}
	t.sendText(chatID, fmt.Sprintf("Ти в грі! 🎯 Відмічай виконання челенджу «%s» щодня.", c.Title))
	t.grantBadge(ctx, userID, chatID, badgeChallenger)
}

// handleChallengeDo asks for a media proof before counting the day.
func (t *TelegramBot) handleChallengeDo(ctx context.Context, userID, chatID, challengeID int64) {
	c, err := t.db.GetChallenge(ctx, challengeID)
	if err != nil || c == nil {
		t.sendText(chatID, "Цей челендж уже недоступний.")
		return
	}
	p, err := t.db.GetChallengeProgress(ctx, userID, challengeID)
	if err != nil {
		t.logger.Errorf("challenge progress %d for %d: %v", challengeID, userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	if p == nil {
		t.sendText(chatID, "Спершу долучися до челенджу кнопкою «Долучитися».")
		return
	}

	session := t.sessions.Begin(userID, StateAwaitProofVideo)
	session.TargetChallengeID = challengeID
	t.sendText(chatID, "Надішли фото або відео як доказ виконання. 📸")
}

// completeChallengeDay counts a proven day and closes the challenge for the
// user when the counter reaches the duration.
func (t *TelegramBot) completeChallengeDay(ctx context.Context, userID, chatID, challengeID int64) {
	c, err := t.db.GetChallenge(ctx, challengeID)
	if err != nil || c == nil {
		t.sendText(chatID, "Цей челендж уже недоступний.")
		return
	}
	p, err := t.db.GetChallengeProgress(ctx, userID, challengeID)
	if err != nil || p == nil {
		t.sendText(chatID, "Спершу долучися до челенджу кнопкою «Долучитися».")
		return
	}

	if err := t.db.IncrementChallengeProgress(ctx, userID, challengeID); err != nil {
		t.logger.Errorf("increment challenge %d for %d: %v", challengeID, userID, err)
		t.sendText(chatID, "Не вдалося зарахувати. Спробуй ще раз.")
		return
	}

	done, finished := challengeDayOutcome(p.ProgressDays, c.DurationDays)
	if finished {
		t.sendMarkdown(chatID, fmt.Sprintf("🏁 *Челендж «%s» завершено!* Ти неймовірний!", c.Title))
		if t.groupID != 0 {
			if user, err := t.db.GetUser(ctx, userID); err == nil && user != nil && user.Username != "" {
				t.sendMarkdown(t.groupID, fmt.Sprintf("🏁 @%s пройшов челендж «%s» до кінця! 👏", user.Username, c.Title))
			}
		}
		return
	}
	t.sendText(chatID, fmt.Sprintf("Зараховано! Прогрес: %d/%d днів. 🔥", done, c.DurationDays))
}

func (t *TelegramBot) startChallengeCreate(userID, chatID int64) {
	t.sessions.Begin(userID, StateChallengeTitle)
	t.sendText(chatID, "Як назвемо челендж? Наприклад: «100 присідань щодня»")
}

func (t *TelegramBot) handleChallengeCreateStep(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	switch session.State {
	case StateChallengeTitle:
		if text == "" {
			t.sendText(chatID, "Введи назву текстом, будь ласка.")
			return
		}
		session.ChallengeTitle = text
		session.State = StateChallengeDesc
		t.sendText(chatID, "Додай короткий опис: що саме треба робити?")

	case StateChallengeDesc:
		if text == "" {
			t.sendText(chatID, "Введи опис текстом, будь ласка.")
			return
		}
		session.ChallengeDesc = text
		session.State = StateChallengeDuration
		t.sendText(chatID, fmt.Sprintf("Скільки днів триватиме челендж? (від %d до %d)", minChallengeDays, maxChallengeDays))

	case StateChallengeDuration:
		days, err := strconv.Atoi(text)
		if err != nil || days < minChallengeDays || days > maxChallengeDays {
			t.sendText(chatID, fmt.Sprintf("Введи число від %d до %d.", minChallengeDays, maxChallengeDays))
			return
		}

		title := session.ChallengeTitle
		desc := session.ChallengeDesc
		t.sessions.Clear(userID)

		challengeID, err := t.db.CreateChallenge(ctx, userID, title, desc, days)
		if err != nil {
			t.logger.Errorf("create challenge for %d: %v", userID, err)
			t.sendText(chatID, "Не вдалося створити челендж. Спробуй пізніше.")
			return
		}

		// The challenge deletes itself when its time runs out.
		t.scheduleChallengeExpiry(challengeID, time.Now().Add(time.Duration(days)*24*time.Hour))

		t.sendMarkdown(chatID, fmt.Sprintf("Челендж *«%s»* створено на %d днів! 🎯", title, days))
		if t.groupID != 0 {
			t.sendMarkdown(t.groupID, fmt.Sprintf(
				"🎯 *Новий челендж: «%s»*\n\n%s\n\nТривалість: %d днів. Долучайся через бота!",
				title, desc, days))
		}
	}
}

func (t *TelegramBot) scheduleChallengeExpiry(challengeID int64, at time.Time) {
	if t.expiry == nil {
		return
	}
	t.expiry.Schedule(challengeExpiryID(challengeID), at, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := t.db.DeleteChallenge(ctx, challengeID); err != nil {
			t.logger.Errorf("auto-delete challenge %d: %v", challengeID, err)
		}
	})
}

// RescheduleChallengeExpiry re-arms the auto-delete timers after a restart.
// Challenges that ran out while the bot was down get a timer in the past,
// which fires immediately.
func (t *TelegramBot) RescheduleChallengeExpiry(ctx context.Context) error {
	challenges, err := t.db.GetActiveChallenges(ctx)
	if err != nil {
		return err
	}
	for _, c := range challenges {
		t.scheduleChallengeExpiry(c.ID, challengeExpiresAt(c))
	}
	return nil
}

// handleDeleteChallenge is the admin escape hatch: drops the challenge and
// cancels its pending auto-delete timer.
func (t *TelegramBot) handleDeleteChallenge(ctx context.Context, userID, chatID int64, args string) {
	if userID != t.adminID {
		t.sendText(chatID, "Ця команда доступна лише адміністратору.")
		return
	}
	challengeID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		t.sendText(chatID, "Вкажи ID челенджу: /delete_challenge 42")
		return
	}

	if t.expiry != nil {
		t.expiry.Cancel(challengeExpiryID(challengeID))
	}
	if err := t.db.DeleteChallenge(ctx, challengeID); err != nil {
		t.logger.Errorf("delete challenge %d: %v", challengeID, err)
		t.sendText(chatID, "Не вдалося видалити челендж.")
		return
	}
	t.sendText(chatID, fmt.Sprintf("Челендж %d видалено.", challengeID))
}

func (t *TelegramBot) startDuel(userID, chatID int64, args string) {
	opponent := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(args), "@"))
	if opponent != "" {
		session := t.sessions.Begin(userID, StateDuelDescription)
		session.DuelOpponent = opponent
		t.sendText(chatID, "Опиши умову дуелі. Наприклад: «Хто зробить більше віджимань за тиждень»")
		return
	}
	t.sessions.Begin(userID, StateDuelOpponent)
	t.sendText(chatID, "Кого викликаєш? Надішли @username суперника.")
}

func (t *TelegramBot) handleDuelStep(ctx context.Context, message *tgbotapi.Message, session *Session) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	switch session.State {
	case StateDuelOpponent:
		username := strings.TrimPrefix(text, "@")
		if username == "" {
			t.sendText(chatID, "Надішли @username суперника.")
			return
		}
		if strings.EqualFold(username, message.From.UserName) {
			t.sendText(chatID, "Самого себе викликати не можна. 😄")
			return
		}
		session.DuelOpponent = username
		session.State = StateDuelDescription
		t.sendText(chatID, "Опиши умову дуелі. Наприклад: «Хто зробить більше віджимань за тиждень»")

	case StateDuelDescription:
		if text == "" {
			t.sendText(chatID, "Введи умову текстом, будь ласка.")
			return
		}
		opponentName := session.DuelOpponent
		t.sessions.Clear(userID)

		opponent, err := t.db.GetUserByUsername(ctx, opponentName)
		if err != nil {
			t.logger.Errorf("find duel opponent %q: %v", opponentName, err)
			t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
			return
		}
		if opponent == nil {
			t.sendText(chatID, fmt.Sprintf("Не знаю користувача @%s. Він має спершу запустити бота.", opponentName))
			return
		}
		// The /duel @name path skips the username prompt, so the self-check
		// has to happen here, on resolved IDs.
		if !validDuelOpponent(userID, opponent) {
			t.sendText(chatID, "Самого себе викликати не можна. 😄")
			return
		}

		duelID, err := t.db.CreateDuel(ctx, userID, opponent.ID, text)
		if err != nil {
			t.logger.Errorf("create duel %d vs %d: %v", userID, opponent.ID, err)
			t.sendText(chatID, "Не вдалося створити дуель. Спробуй пізніше.")
			return
		}

		t.sendText(chatID, fmt.Sprintf("Виклик надіслано @%s! Чекаємо на відповідь. ⚔️", opponentName))

		initiator := "@" + message.From.UserName
		if message.From.UserName == "" {
			initiator = message.From.FirstName
		}
		t.sendWithKeyboard(opponent.ID,
			fmt.Sprintf("⚔️ %s викликає тебе на дуель!\n\nУмова: %s\n\nПриймаєш?", initiator, text),
			duelResponseKeyboard(duelID))
	}
}

func (t *TelegramBot) handleDuelAccept(ctx context.Context, userID, chatID, duelID int64) {
	d, err := t.db.GetDuel(ctx, duelID)
	if err != nil || d == nil {
		t.sendText(chatID, "Ця дуель уже недоступна.")
		return
	}
	if !canRespondToDuel(d, userID) {
		t.sendText(chatID, "Цю дуель уже не можна прийняти.")
		return
	}

	if err := t.db.UpdateDuelStatus(ctx, duelID, models.DuelActive); err != nil {
		t.logger.Errorf("accept duel %d: %v", duelID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй ще раз.")
		return
	}

	t.sendWithKeyboard(chatID, "Дуель прийнято! ⚔️ Коли виконаєш умову - надішли відео-доказ.", duelProofKeyboard(duelID))
	t.sendWithKeyboard(d.InitiatorID, "Твій виклик прийнято! ⚔️ Коли виконаєш умову - надішли відео-доказ.", duelProofKeyboard(duelID))

	if t.groupID != 0 {
		t.sendMarkdown(t.groupID, fmt.Sprintf(
			"⚔️ *Нова дуель!*\n\n%s та %s змагаються: %s\n\nСтежимо! 👀",
			t.duelName(ctx, d.InitiatorID), t.duelName(ctx, d.OpponentID), d.Description))
	}
}

// duelName is a display handle for group announcements.
func (t *TelegramBot) duelName(ctx context.Context, userID int64) string {
	u, err := t.db.GetUser(ctx, userID)
	if err != nil || u == nil {
		return "учасник"
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.FullName != "" {
		return u.FullName
	}
	return "учасник"
}

func (t *TelegramBot) handleDuelReject(ctx context.Context, userID, chatID, duelID int64) {
	d, err := t.db.GetDuel(ctx, duelID)
	if err != nil || d == nil {
		t.sendText(chatID, "Ця дуель уже недоступна.")
		return
	}
	if !canRespondToDuel(d, userID) {
		t.sendText(chatID, "Цю дуель уже не можна відхилити.")
		return
	}

	if err := t.db.UpdateDuelStatus(ctx, duelID, models.DuelRejected); err != nil {
		t.logger.Errorf("reject duel %d: %v", duelID, err)
		return
	}
	t.sendText(chatID, "Дуель відхилено.")
	t.sendText(d.InitiatorID, "На жаль, суперник відхилив твій виклик. 🙅")
}

func (t *TelegramBot) startProofUpload(userID, chatID, duelID int64) {
	session := t.sessions.Begin(userID, StateAwaitProofVideo)
	session.TargetDuelID = duelID
	t.sendText(chatID, "Надішли відео-доказ виконання. 🎥")
}

// handleProofMedia is the shared proof state: the same upload step serves
// both challenge days and duels, depending on which one asked for it.
func (t *TelegramBot) handleProofMedia(ctx context.Context, message *tgbotapi.Message, session *Session) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if session.TargetChallengeID != 0 {
		challengeID := session.TargetChallengeID
		t.sessions.Clear(userID)
		t.completeChallengeDay(ctx, userID, chatID, challengeID)
		return
	}

	if message.Video == nil {
		t.sendText(chatID, "Для дуелі потрібне саме відео. 🎥")
		return
	}

	duelID := session.TargetDuelID
	t.sessions.Clear(userID)

	d, err := t.db.GetDuel(ctx, duelID)
	if err != nil {
		t.logger.Errorf("get duel %d: %v", duelID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй ще раз.")
		return
	}
	switch duelProofVerdict(d, userID) {
	case proofDuelInactive:
		t.sendText(chatID, "Ця дуель уже неактивна.")
		return
	case proofNotParticipant:
		t.sendText(chatID, "Ти не береш участі в цій дуелі.")
		return
	}

	if err := t.db.MarkDuelCompleted(ctx, userID, duelID); err != nil {
		t.logger.Errorf("mark duel %d completed by %d: %v", duelID, userID, err)
		t.sendText(chatID, "Не вдалося зарахувати. Спробуй ще раз.")
		return
	}

	// Forward the proof to the other side.
	other := d.InitiatorID
	if userID == d.InitiatorID {
		other = d.OpponentID
	}
	forward := tgbotapi.NewVideo(other, tgbotapi.FileID(message.Video.FileID))
	forward.Caption = "🎥 Суперник надіслав доказ виконання дуелі!"
	if _, err := t.bot.Send(forward); err != nil {
		t.logger.Errorf("forward proof video for duel %d: %v", duelID, err)
	}

	d, err = t.db.GetDuel(ctx, duelID)
	if err != nil || d == nil {
		return
	}
	if duelFinished(d) {
		if err := t.db.UpdateDuelStatus(ctx, duelID, models.DuelCompleted); err != nil {
			t.logger.Errorf("complete duel %d: %v", duelID, err)
		}
		congrats := "🏆 Дуель завершено! Обидва виконали умову - перемогла дружба і дисципліна!"
		t.sendText(d.InitiatorID, congrats)
		t.sendText(d.OpponentID, congrats)
		if t.groupID != 0 {
			t.sendMarkdown(t.groupID, fmt.Sprintf(
				"🏆 *Дуель завершено!* %s та %s обидва впоралися з умовою: %s 👏",
				t.duelName(ctx, d.InitiatorID), t.duelName(ctx, d.OpponentID), d.Description))
		}
		return
	}
	t.sendText(chatID, "Доказ зараховано! ✅ Чекаємо на суперника.")
	if t.groupID != 0 {
		t.sendMarkdown(t.groupID, fmt.Sprintf(
			"⚔️ %s виконав умову дуелі й чекає на суперника!", t.duelName(ctx, userID)))
	}
}

func (t *TelegramBot) startShareResult(userID, chatID int64) {
	t.sessions.Begin(userID, StateAwaitResultPhoto)
	t.sendText(chatID, "Надішли фото свого результату. 📸")
}

func (t *TelegramBot) handleResultPhoto(ctx context.Context, message *tgbotapi.Message, session *Session) {
	userID := message.From.ID
	chatID := message.Chat.ID
	t.sessions.Clear(userID)

	// The last size is the largest.
	fileID := message.Photo[len(message.Photo)-1].FileID

	if err := t.db.AddUserResult(ctx, userID, fileID); err != nil {
		t.logger.Errorf("save result photo for %d: %v", userID, err)
		t.sendText(chatID, "Не вдалося зберегти фото. Спробуй ще раз.")
		return
	}

	t.sendWithKeyboard(chatID, "Фото збережено у твою галерею результатів! 📸", mainMenuKeyboard())

	if t.groupID != 0 {
		photo := tgbotapi.NewPhoto(t.groupID, tgbotapi.FileID(fileID))
		if message.From.UserName != "" {
			photo.Caption = fmt.Sprintf("📸 Новий результат від @%s! Підтримаємо! 💪", message.From.UserName)
		} else {
			photo.Caption = "📸 Новий результат учасника спільноти! 💪"
		}
		if _, err := t.bot.Send(photo); err != nil {
			t.logger.Errorf("post result to group: %v", err)
		}
	}
}

// handleMyResults sends the user's result photos as a media group, ten to a
// batch.
func (t *TelegramBot) handleMyResults(ctx context.Context, userID, chatID int64) {
	fileIDs, err := t.db.GetUserResults(ctx, userID)
	if err != nil {
		t.logger.Errorf("get results for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	if len(fileIDs) == 0 {
		t.sendText(chatID, "Галерея поки порожня. Поділися першим результатом! 📸")
		return
	}

	for start := 0; start < len(fileIDs); start += 10 {
		end := start + 10
		if end > len(fileIDs) {
			end = len(fileIDs)
		}
		batch := fileIDs[start:end]

		if len(batch) == 1 {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(batch[0]))
			if _, err := t.bot.Send(photo); err != nil {
				t.logger.Errorf("send result photo: %v", err)
			}
			continue
		}

		media := make([]interface{}, 0, len(batch))
		for _, id := range batch {
			media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(id)))
		}
		group := tgbotapi.NewMediaGroup(chatID, media)
		if _, err := t.bot.SendMediaGroup(group); err != nil {
			t.logger.Errorf("send result gallery: %v", err)
		}
	}
}
