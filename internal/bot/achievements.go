// internal/bot/achievements.go
package bot

import (
	"context"
	"fmt"
	"strings"
)

type Badge struct {
	ID          string
	Title       string
	Description string
	Significant bool
}

// badgeRegistry lists every badge the bot can grant. Significant badges are
// also announced in the community group.
var badgeRegistry = map[string]Badge{
	"novice":     {ID: "novice", Title: "🌱 Новачок", Description: "Заповнив анкету та отримав перший план"},
	"first_step": {ID: "first_step", Title: "👟 Перший крок", Description: "Перше виконане тренування"},
	"stability":  {ID: "stability", Title: "🧱 Стабільність", Description: "5 тренувань за тиждень", Significant: true},
	"chef":       {ID: "chef", Title: "👨‍🍳 Шеф", Description: "Перший приготований рецепт від тренера"},
	"marathoner": {ID: "marathoner", Title: "🏃 Марафонець", Description: "50 виконаних тренувань", Significant: true},
	"challenger": {ID: "challenger", Title: "🎯 Челенджер", Description: "Долучився до першого челенджу"},
	"veteran":    {ID: "veteran", Title: "🎖 Ветеран", Description: "30 днів разом з ботом"},
}

const (
	badgeNovice     = "novice"
	badgeFirstStep  = "first_step"
	badgeStability  = "stability"
	badgeChef       = "chef"
	badgeMarathoner = "marathoner"
	badgeChallenger = "challenger"
	badgeVeteran    = "veteran"
)

const (
	stabilityWeeklyWorkouts = 5
	marathonerTotalWorkouts = 50
)

// BadgeStore is the store slice the workout badge evaluator needs.
type BadgeStore interface {
	CountTotalWorkouts(ctx context.Context, userID int64) (int, error)
	CountWorkoutsLastNDays(ctx context.Context, userID int64, days int) (int, error)
	HasAchievement(ctx context.Context, userID int64, achievementID string) (bool, error)
	GrantAchievement(ctx context.Context, userID int64, achievementID string) error
}

// EvaluateWorkoutBadges checks the workout-count badges after a completed
// workout and grants the ones newly earned. Granting is idempotent, so a
// badge is reported at most once.
func EvaluateWorkoutBadges(ctx context.Context, store BadgeStore, userID int64) ([]Badge, error) {
	total, err := store.CountTotalWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}
	week, err := store.CountWorkoutsLastNDays(ctx, userID, 7)
	if err != nil {
		return nil, err
	}

	candidates := []string{}
	if total >= 1 {
		candidates = append(candidates, badgeFirstStep)
	}
	if week >= stabilityWeeklyWorkouts {
		candidates = append(candidates, badgeStability)
	}
	if total >= marathonerTotalWorkouts {
		candidates = append(candidates, badgeMarathoner)
	}

	var earned []Badge
	for _, id := range candidates {
		has, err := store.HasAchievement(ctx, userID, id)
		if err != nil {
			return earned, err
		}
		if has {
			continue
		}
		if err := store.GrantAchievement(ctx, userID, id); err != nil {
			return earned, err
		}
		earned = append(earned, badgeRegistry[id])
	}
	return earned, nil
}

// grantBadge grants a single badge by ID and congratulates the user if it is
// new.
func (t *TelegramBot) grantBadge(ctx context.Context, userID, chatID int64, badgeID string) {
	badge, ok := badgeRegistry[badgeID]
	if !ok {
		return
	}
	has, err := t.db.HasAchievement(ctx, userID, badgeID)
	if err != nil || has {
		return
	}
	if err := t.db.GrantAchievement(ctx, userID, badgeID); err != nil {
		t.logger.Errorf("grant badge %s to %d: %v", badgeID, userID, err)
		return
	}
	t.announceBadge(ctx, userID, chatID, badge)
}

func (t *TelegramBot) announceBadge(ctx context.Context, userID, chatID int64, badge Badge) {
	t.sendMarkdown(chatID, fmt.Sprintf("🏅 *Нова нагорода!*\n\n%s - %s", badge.Title, badge.Description))

	if badge.Significant && t.groupID != 0 {
		user, err := t.db.GetUser(ctx, userID)
		if err != nil || user == nil {
			return
		}
		name := user.Username
		if name == "" {
			name = user.FullName
		}
		t.sendMarkdown(t.groupID, fmt.Sprintf("🎉 @%s щойно здобув нагороду %s! Вітаємо!", name, badge.Title))
	}
}

// handleWorkoutDone logs the completed workout and hands out whatever badges
// it unlocked.
func (t *TelegramBot) handleWorkoutDone(ctx context.Context, userID, chatID int64) {
	if err := t.db.LogWorkoutCompletion(ctx, userID); err != nil {
		t.logger.Errorf("log workout for %d: %v", userID, err)
		t.sendText(chatID, "Не вдалося зберегти тренування. Спробуй ще раз.")
		return
	}

	t.sendText(chatID, "Потужно! 💪 Тренування зараховано.")

	earned, err := EvaluateWorkoutBadges(ctx, t.db, userID)
	if err != nil {
		t.logger.Errorf("evaluate badges for %d: %v", userID, err)
	}
	for _, badge := range earned {
		t.announceBadge(ctx, userID, chatID, badge)
	}
}

func (t *TelegramBot) handleAchievements(ctx context.Context, userID, chatID int64) {
	ids, err := t.db.GetUserAchievements(ctx, userID)
	if err != nil {
		t.logger.Errorf("list achievements for %d: %v", userID, err)
		t.sendText(chatID, "Сталася помилка. Спробуй пізніше.")
		return
	}
	if len(ids) == 0 {
		t.sendText(chatID, "Поки що нагород немає. Перше тренування вже чекає на тебе! 💪")
		return
	}

	var b strings.Builder
	b.WriteString("🏅 *Твої нагороди:*\n\n")
	for _, id := range ids {
		if badge, ok := badgeRegistry[id]; ok {
			fmt.Fprintf(&b, "%s - %s\n", badge.Title, badge.Description)
		}
	}
	t.sendMarkdown(chatID, b.String())
}
