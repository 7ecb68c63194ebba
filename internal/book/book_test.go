package book

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/smileynet/addressbook/internal/contact"
)

func newRecord(t *testing.T, name, birthday string, phones ...string) *contact.Record {
	t.Helper()
	r, err := contact.NewRecord(name)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			t.Fatal(err)
		}
	}
	if birthday != "" {
		if err := r.SetBirthday(birthday); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBook_AddAndFind(t *testing.T) {
	// Given an empty book
	b := New()

	// When a record is added
	b.Add(newRecord(t, "John", "", "1234567890"))

	// Then Find returns it
	r, ok := b.Find("John")
	if !ok {
		t.Fatal("Find() found = false, want true")
	}
	if r.Name != "John" {
		t.Errorf("Name = %q, want %q", r.Name, "John")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBook_AddOverwritesSameName(t *testing.T) {
	// Given a book with John
	b := New()
	b.Add(newRecord(t, "John", "", "1234567890"))
	b.Add(newRecord(t, "Jane", "", "9876543210"))

	// When another John is added
	b.Add(newRecord(t, "John", "", "5555555555"))

	// Then the new record replaces the old one in place
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	r, _ := b.Find("John")
	if got := r.PhoneStrings(); !reflect.DeepEqual(got, []string{"5555555555"}) {
		t.Errorf("phones = %v, want [5555555555]", got)
	}
	if names := recordNames(b); !reflect.DeepEqual(names, []string{"John", "Jane"}) {
		t.Errorf("order = %v, want [John Jane]", names)
	}
}

func TestBook_FindMissing(t *testing.T) {
	b := New()

	r, ok := b.Find("nobody")

	if ok || r != nil {
		t.Errorf("Find(nobody) = (%v, %v), want (nil, false)", r, ok)
	}
}

func TestBook_Delete(t *testing.T) {
	b := New()
	b.Add(newRecord(t, "John", ""))
	b.Add(newRecord(t, "Jane", ""))

	// Deleting an absent name is a no-op.
	b.Delete("nobody")
	if b.Len() != 2 {
		t.Fatalf("Len() = %d after deleting absent name, want 2", b.Len())
	}

	b.Delete("John")
	if _, ok := b.Find("John"); ok {
		t.Error("Find(John) found = true after Delete")
	}
	if names := recordNames(b); !reflect.DeepEqual(names, []string{"Jane"}) {
		t.Errorf("order = %v, want [Jane]", names)
	}
}

func recordNames(b *Book) []string {
	var names []string
	for _, r := range b.Records() {
		names = append(names, r.Name)
	}
	return names
}

func TestBirthdaysWithinNextWeek(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		birthdays map[string]string
		want      map[string][]string
	}{
		{
			name:      "two days ahead",
			ref:       date(2024, time.March, 1),
			birthdays: map[string]string{"Ann": "03.03.1990"},
			want:      map[string][]string{"Sunday": {"Ann"}},
		},
		{
			name:      "nine days ahead is outside",
			ref:       date(2024, time.March, 1),
			birthdays: map[string]string{"Bob": "10.03.1990"},
			want:      map[string][]string{},
		},
		{
			name:      "already passed resolves to next year",
			ref:       date(2024, time.March, 1),
			birthdays: map[string]string{"Cid": "28.02.1990"},
			want:      map[string][]string{},
		},
		{
			name:      "reference day is inclusive",
			ref:       date(2024, time.March, 1),
			birthdays: map[string]string{"Dee": "01.03.1985"},
			want:      map[string][]string{"Friday": {"Dee"}},
		},
		{
			name:      "seventh day is exclusive",
			ref:       date(2024, time.March, 1),
			birthdays: map[string]string{"Eve": "08.03.1985"},
			want:      map[string][]string{},
		},
		{
			name:      "last day inside window",
			ref:       date(2024, time.March, 1),
			birthdays: map[string]string{"Fay": "07.03.1985"},
			want:      map[string][]string{"Thursday": {"Fay"}},
		},
		{
			name:      "year wraparound",
			ref:       date(2024, time.December, 30),
			birthdays: map[string]string{"Gus": "02.01.1990"},
			want:      map[string][]string{"Thursday": {"Gus"}},
		},
		{
			name:      "leap day in common year falls on Feb 28",
			ref:       date(2025, time.February, 27),
			birthdays: map[string]string{"Hal": "29.02.2000"},
			want:      map[string][]string{"Friday": {"Hal"}},
		},
		{
			name:      "leap day in leap year",
			ref:       date(2028, time.February, 27),
			birthdays: map[string]string{"Ivy": "29.02.2000"},
			want:      map[string][]string{"Tuesday": {"Ivy"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			for name, bd := range tt.birthdays {
				b.Add(newRecord(t, name, bd))
			}

			got := b.BirthdaysWithinNextWeek(tt.ref).ByWeekday()

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ByWeekday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBirthdaysWithinNextWeek_GroupsAndOrders(t *testing.T) {
	// Given contacts spread across the window, two sharing a day
	b := New()
	b.Add(newRecord(t, "Late", "05.01.1980"))
	b.Add(newRecord(t, "NoBirthday", ""))
	b.Add(newRecord(t, "Early", "31.12.1970"))
	b.Add(newRecord(t, "AlsoLate", "05.01.1999"))

	// When the window starts on Dec 30
	week := b.BirthdaysWithinNextWeek(date(2024, time.December, 30))

	// Then days are in date order and names keep book order
	if len(week.Days) != 2 {
		t.Fatalf("Days = %+v, want 2 days", week.Days)
	}
	if !week.Days[0].Date.Equal(date(2024, time.December, 31)) || week.Days[0].Weekday != time.Tuesday {
		t.Errorf("Days[0] = %v %v, want Tuesday 2024-12-31", week.Days[0].Weekday, week.Days[0].Date)
	}
	if !reflect.DeepEqual(week.Days[0].Names, []string{"Early"}) {
		t.Errorf("Days[0].Names = %v, want [Early]", week.Days[0].Names)
	}
	if !week.Days[1].Date.Equal(date(2025, time.January, 5)) || week.Days[1].Weekday != time.Sunday {
		t.Errorf("Days[1] = %v %v, want Sunday 2025-01-05", week.Days[1].Weekday, week.Days[1].Date)
	}
	if !reflect.DeepEqual(week.Days[1].Names, []string{"Late", "AlsoLate"}) {
		t.Errorf("Days[1].Names = %v, want [Late AlsoLate]", week.Days[1].Names)
	}
}

func TestBirthdaysWithinNextWeek_IgnoresTimeOfDay(t *testing.T) {
	b := New()
	b.Add(newRecord(t, "Ann", "01.03.1990"))

	week := b.BirthdaysWithinNextWeek(time.Date(2024, time.March, 1, 23, 59, 0, 0, time.Local))

	if week.Empty() {
		t.Error("Empty() = true, want birthday on the reference day included")
	}
}

func TestBirthdaysWithinNextWeek_MidnightDSTZone(t *testing.T) {
	// Given a local zone whose clocks jump forward at midnight (2024-09-08 00:00 does not exist)
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	orig := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = orig })

	b := New()
	b.Add(newRecord(t, "Ann", "08.09.1990"))

	// When the window starts on Monday 2024-09-02
	week := b.BirthdaysWithinNextWeek(time.Date(2024, time.September, 2, 9, 0, 0, 0, time.Local))

	// Then the birthday is still grouped under its own weekday
	got := week.ByWeekday()
	if !reflect.DeepEqual(got, map[string][]string{"Sunday": {"Ann"}}) {
		t.Errorf("ByWeekday() = %v, want map[Sunday:[Ann]]", got)
	}
	if len(week.Days) == 1 && !week.Days[0].Date.Equal(date(2024, time.September, 8)) {
		t.Errorf("Days[0].Date = %v, want 2024-09-08", week.Days[0].Date)
	}
}

func TestBirthdaysWithinNextWeek_SkipsDamagedBirthday(t *testing.T) {
	// Given a book with a logger and one contact whose birthday no longer parses
	var logs bytes.Buffer
	b := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	broken := newRecord(t, "Broken", "")
	damaged := contact.RestoreBirthday("99.99.9999")
	broken.Birthday = &damaged
	b.Add(broken)
	b.Add(newRecord(t, "Fine", "03.03.1990"))

	// When the lookahead runs
	got := b.BirthdaysWithinNextWeek(date(2024, time.March, 1)).ByWeekday()

	// Then the damaged contact is skipped with a warning and the rest are processed
	want := map[string][]string{"Sunday": {"Fine"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByWeekday() = %v, want %v", got, want)
	}
	if !strings.Contains(logs.String(), "Broken") || !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("log output = %q, want a warning naming Broken", logs.String())
	}
}

func TestBirthdaysWithinNextWeek_EmptyBook(t *testing.T) {
	week := New().BirthdaysWithinNextWeek(date(2024, time.March, 1))

	if !week.Empty() {
		t.Errorf("Empty() = false, Days = %+v", week.Days)
	}
	if got := week.ByWeekday(); len(got) != 0 {
		t.Errorf("ByWeekday() = %v, want empty", got)
	}
}
