package plan

import (
	"strings"
	"testing"
	"time"
)

const samplePlan = "Вітаю! Ось твій план.\n\n" +
	"**Понеділок - груди та трицепс**\n" +
	"1. Віджимання 4x12\n" +
	"2. Жим гантелей 3x10\n" +
	"Орієнтовно спалених калорій: 350 ккал.\n\n" +
	"**Середа - ноги**\n" +
	"1. Присідання 4x15\n" +
	"Орієнтовно спалених калорій: 400 ккал.\n\n" +
	"**Неділя - відпочинок**\n" +
	"Повне відновлення.\n"

func TestDaySection(t *testing.T) {
	tests := []struct {
		name     string
		weekday  time.Weekday
		contains string
		empty    bool
	}{
		{"monday workout", time.Monday, "Віджимання", false},
		{"wednesday workout", time.Wednesday, "Присідання", false},
		{"sunday rest", time.Sunday, "відпочинок", false},
		{"tuesday missing", time.Tuesday, "", true},
		{"friday missing", time.Friday, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaySection(samplePlan, tt.weekday)
			if tt.empty {
				if got != "" {
					t.Fatalf("DaySection(%v) = %q, want empty", tt.weekday, got)
				}
				return
			}
			if got == "" {
				t.Fatalf("DaySection(%v) returned empty, want section containing %q", tt.weekday, tt.contains)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("DaySection(%v) = %q, want it to contain %q", tt.weekday, got, tt.contains)
			}
		})
	}
}

func TestDaySectionStopsAtNextDay(t *testing.T) {
	got := DaySection(samplePlan, time.Monday)
	if strings.Contains(got, "Присідання") {
		t.Errorf("Monday section leaked into Wednesday: %q", got)
	}
}

func TestDaySectionEmptyPlan(t *testing.T) {
	if got := DaySection("", time.Monday); got != "" {
		t.Errorf("DaySection on empty plan = %q, want empty", got)
	}
}

func TestIsRestDay(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    bool
	}{
		{"explicit rest", "**Неділя - відпочинок**", true},
		{"rest uppercase", "Сьогодні ВІДПОЧИНОК", true},
		{"workout day", "**Понеділок - груди**\n1. Віджимання", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRestDay(tt.section); got != tt.want {
				t.Errorf("IsRestDay(%q) = %v, want %v", tt.section, got, tt.want)
			}
		})
	}
}

func TestWeekdayName(t *testing.T) {
	tests := []struct {
		weekday time.Weekday
		want    string
	}{
		{time.Monday, "Понеділок"},
		{time.Friday, "П'ятниця"},
		{time.Sunday, "Неділя"},
	}

	for _, tt := range tests {
		if got := WeekdayName(tt.weekday); got != tt.want {
			t.Errorf("WeekdayName(%v) = %q, want %q", tt.weekday, got, tt.want)
		}
	}
}
