package entity

import (
	"testing"
	"time"
)

func TestNewUser_WelcomeGrant(t *testing.T) {
	u := NewUser("Ada", "1990-03-14", 500)

	if u.ID == "" {
		t.Fatal("expected generated user ID")
	}
	if u.Credits != 500 {
		t.Errorf("Credits = %d, want 500", u.Credits)
	}
	if u.Books == nil || len(u.Books) != 0 {
		t.Errorf("Books = %v, want empty slice", u.Books)
	}
}

func TestUser_DebitCredit(t *testing.T) {
	u := NewUser("Ada", "", 100)

	if !u.CanAfford(100) {
		t.Error("CanAfford(100) = false, want true")
	}
	if u.CanAfford(101) {
		t.Error("CanAfford(101) = true, want false")
	}

	u.Debit(30)
	if u.Credits != 70 {
		t.Errorf("Credits after debit = %d, want 70", u.Credits)
	}
	u.Credit(50)
	if u.Credits != 120 {
		t.Errorf("Credits after credit = %d, want 120", u.Credits)
	}
}

func TestUser_AddBook_PrependsNewest(t *testing.T) {
	u := NewUser("Ada", "", 0)
	first := NewBook("First", "Ada", "English", "", "", nil)
	second := NewBook("Second", "Ada", "English", "", "", nil)

	u.AddBook(first)
	u.AddBook(second)

	if len(u.Books) != 2 {
		t.Fatalf("len(Books) = %d, want 2", len(u.Books))
	}
	if u.Books[0].Title != "Second" {
		t.Errorf("Books[0].Title = %q, want %q", u.Books[0].Title, "Second")
	}
	if u.Books[1].Title != "First" {
		t.Errorf("Books[1].Title = %q, want %q", u.Books[1].Title, "First")
	}
}

func TestUser_RemoveBook(t *testing.T) {
	u := NewUser("Ada", "", 0)
	book := NewBook("Gone", "Ada", "English", "", "", nil)
	u.AddBook(book)

	if !u.RemoveBook(book.ID) {
		t.Error("RemoveBook(existing) = false, want true")
	}
	if len(u.Books) != 0 {
		t.Errorf("len(Books) = %d, want 0", len(u.Books))
	}
	if u.RemoveBook("missing-id") {
		t.Error("RemoveBook(missing) = true, want false")
	}
}

func TestUser_HasBirthdayOn(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		today     time.Time
		want      bool
	}{
		{"matching month and day", "1990-03-14", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), true},
		{"different year still matches", "2001-03-14", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), true},
		{"different day", "1990-03-14", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"different month", "1990-04-14", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), false},
		{"empty birth date", "", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), false},
		{"malformed birth date", "14/03/1990", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUser("Ada", tt.birthDate, 0)
			if got := u.HasBirthdayOn(tt.today); got != tt.want {
				t.Errorf("HasBirthdayOn() = %v, want %v", got, tt.want)
			}
		})
	}
}
