package assistant

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/contact"
)

type group int

const (
	groupGeneral group = iota
	groupEdit
	groupQuery
	groupExit
)

type command struct {
	names []string
	args  string
	help  string
	group group
	arity int // -1 skips the argument count check
	exit  bool
	run   func(a *Assistant, args []string) (string, error)
}

// commands lists every command in help order.
// help has no run func here: it reads this table, so Execute binds it.
var commands = []command{
	{names: []string{"hello"}, help: "Greet the bot.", group: groupGeneral, arity: -1, run: (*Assistant).hello},
	{names: []string{"add"}, args: "[name] [phone number]", help: "Add a new contact.", group: groupEdit, arity: 2, run: (*Assistant).add},
	{names: []string{"change"}, args: "[name] [new phone number]", help: "Change an existing contact's phone number.", group: groupEdit, arity: 2, run: (*Assistant).change},
	{names: []string{"add-phone"}, args: "[name] [phone number]", help: "Add another phone number to a contact.", group: groupEdit, arity: 2, run: (*Assistant).addPhone},
	{names: []string{"remove-phone"}, args: "[name] [phone number]", help: "Remove a phone number from a contact.", group: groupEdit, arity: 2, run: (*Assistant).removePhone},
	{names: []string{"delete"}, args: "[name]", help: "Delete a contact.", group: groupEdit, arity: 1, run: (*Assistant).deleteContact},
	{names: []string{"phone"}, args: "[name]", help: "Retrieve the phone number of a contact.", group: groupQuery, arity: 1, run: (*Assistant).phone},
	{names: []string{"add-birthday"}, args: "[name] [birthday]", help: "Add a birthday (DD.MM.YYYY) to a contact.", group: groupQuery, arity: 2, run: (*Assistant).addBirthday},
	{names: []string{"show-birthday"}, args: "[name]", help: "Show the birthday of a contact.", group: groupQuery, arity: 1, run: (*Assistant).showBirthday},
	{names: []string{"birthdays"}, help: "Show upcoming birthdays within the next week.", group: groupQuery, arity: 0, run: (*Assistant).birthdays},
	{names: []string{"all"}, help: "Show all saved contacts.", group: groupQuery, arity: 0, run: (*Assistant).all},
	{names: []string{"help"}, help: "Show this help message.", group: groupGeneral, arity: -1},
	{names: []string{"close", "exit"}, help: "Exit the program.", group: groupExit, arity: -1, exit: true},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		for _, n := range c.names {
			if n == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// Names returns every command name, for completion.
func Names() []string {
	var out []string
	for _, c := range commands {
		out = append(out, c.names...)
	}
	return out
}

func (a *Assistant) hello(_ []string) (string, error) {
	return a.styles.Info.Render("How can I help you?"), nil
}

func (a *Assistant) add(args []string) (string, error) {
	r, err := contact.NewRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(args[1]); err != nil {
		return "", err
	}
	a.book.Add(r)
	return a.styles.Success.Render("Contact added."), nil
}

func (a *Assistant) change(args []string) (string, error) {
	r, err := a.record(args[0])
	if err != nil {
		return "", err
	}
	if len(r.Phones) == 0 {
		return a.styles.Warn.Render(fmt.Sprintf("%s has no phone number to change.", r.Name)), nil
	}
	if err := r.EditPhone(r.Phones[0].String(), args[1]); err != nil {
		return "", err
	}
	return a.styles.Success.Render("Contact updated."), nil
}

func (a *Assistant) addPhone(args []string) (string, error) {
	r, err := a.record(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(args[1]); err != nil {
		return "", err
	}
	return a.styles.Success.Render(fmt.Sprintf("Phone added for %s.", r.Name)), nil
}

func (a *Assistant) removePhone(args []string) (string, error) {
	r, err := a.record(args[0])
	if err != nil {
		return "", err
	}
	if _, ok := r.FindPhone(args[1]); !ok {
		return a.styles.Warn.Render(fmt.Sprintf("%s has no phone number %s.", r.Name, args[1])), nil
	}
	r.RemovePhone(args[1])
	return a.styles.Success.Render(fmt.Sprintf("Phone removed for %s.", r.Name)), nil
}

func (a *Assistant) deleteContact(args []string) (string, error) {
	if _, err := a.record(args[0]); err != nil {
		return "", err
	}
	a.book.Delete(args[0])
	return a.styles.Success.Render("Contact deleted."), nil
}

func (a *Assistant) phone(args []string) (string, error) {
	r, err := a.record(args[0])
	if err != nil {
		return "", err
	}
	switch len(r.Phones) {
	case 0:
		return a.styles.Warn.Render(fmt.Sprintf("No phone numbers saved for %s.", r.Name)), nil
	case 1:
		return a.styles.Info.Render(fmt.Sprintf("%s's phone number is %s", r.Name, r.Phones[0])), nil
	default:
		return a.styles.Info.Render(fmt.Sprintf("%s's phone numbers are %s", r.Name, strings.Join(r.PhoneStrings(), ", "))), nil
	}
}

func (a *Assistant) addBirthday(args []string) (string, error) {
	r, err := a.record(args[0])
	if err != nil {
		return "", err
	}
	if err := r.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return a.styles.Success.Render(fmt.Sprintf("Birthday added for %s.", r.Name)), nil
}

func (a *Assistant) showBirthday(args []string) (string, error) {
	r, err := a.record(args[0])
	if err != nil {
		return "", err
	}
	if r.Birthday == nil {
		return a.styles.Warn.Render("No birthday information available for this contact."), nil
	}
	return a.styles.Info.Render(fmt.Sprintf("%s's birthday is on %s", r.Name, r.Birthday)), nil
}

func (a *Assistant) birthdays(_ []string) (string, error) {
	week := a.book.BirthdaysWithinNextWeek(a.now())
	if week.Empty() {
		return a.styles.Warn.Render("No birthdays in the upcoming week."), nil
	}
	lines := make([]string, 0, len(week.Days))
	for _, d := range week.Days {
		lines = append(lines, a.styles.Info.Render(d.Weekday.String()+": ")+a.styles.Success.Render(strings.Join(d.Names, ", ")))
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) all(_ []string) (string, error) {
	if a.book.Len() == 0 {
		return a.styles.Warn.Render("No contacts saved."), nil
	}
	var lines []string
	for _, r := range a.book.Records() {
		line := fmt.Sprintf("%s: %s", r.Name, strings.Join(r.PhoneStrings(), ", "))
		if r.Birthday != nil {
			line += fmt.Sprintf(" (birthday %s)", r.Birthday)
		}
		lines = append(lines, a.styles.Info.Render(line))
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) help(_ []string) (string, error) {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Available commands:"))
	for _, c := range commands {
		usage := strings.Join(c.names, "/")
		if c.args != "" {
			usage += " " + c.args
		}
		b.WriteString("\n  - ")
		b.WriteString(a.groupStyle(c.group).Render(usage))
		b.WriteString(": " + c.help)
	}
	return b.String(), nil
}

func (a *Assistant) groupStyle(g group) lipgloss.Style {
	switch g {
	case groupEdit:
		return a.styles.Success
	case groupQuery:
		return a.styles.Warn
	case groupExit:
		return a.styles.Error
	default:
		return a.styles.Info
	}
}
