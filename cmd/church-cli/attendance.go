package main

import (
	"github.com/urfave/cli/v2"

	"github.com/topi314/church-tools/server/attendance"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/messages"
)

func attendanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "attendance",
		Usage:     "Show the roster of an event, toggle presences and confirm them.",
		ArgsUsage: "<event-id>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "toggle", Usage: "person id to toggle, can be repeated"},
			&cli.BoolFlag{Name: "confirm", Usage: "send the toggled presences"},
			&cli.StringFlag{Name: "search", Usage: "only show people whose name contains this"},
			&cli.StringFlag{Name: "type", Usage: "visitor, regular_attendee, member or all", Value: string(attendance.PersonTypeAll)},
			&cli.StringFlag{Name: "source", Usage: "roster endpoint: attendance or community", Value: string(attendance.RosterSourceAttendance)},
			&cli.IntFlag{Name: "unmark-concurrency", Usage: "parallel unmark calls", Value: 1},
		},
		Action: func(c *cli.Context) error {
			eventID := c.Args().First()
			if eventID == "" {
				return cli.Exit("Informe o evento.", 2)
			}

			r := attendance.New(attendance.Config{
				RosterSource:      attendance.RosterSource(c.String("source")),
				UnmarkConcurrency: c.Int("unmark-concurrency"),
			}, newClient(c), eventID)
			defer r.Close()

			if _, err := r.Load(c.Context); err != nil {
				return userError(messages.OpLoad, err)
			}

			for _, personID := range c.StringSlice("toggle") {
				if _, err := r.Toggle(personID); err != nil {
					return userError(messages.OpConfirm, err)
				}
			}

			printRoster(c, r.Filter(c.String("search"), community.PersonType(c.String("type"))), r.Pending())

			if !c.Bool("confirm") {
				if pending := len(r.Pending()); pending > 0 {
					printf(c, "\n%d alteração(ões) pendente(s). Use --confirm para salvar.\n", pending)
				}
				return nil
			}

			flush, err := r.Confirm(c.Context)
			if err != nil {
				return userError(messages.OpConfirm, err)
			}
			if flush.Empty() {
				printf(c, "\nNenhuma alteração para salvar.\n")
				return nil
			}
			printf(c, "\nPresenças salvas: %d marcada(s), %d desmarcada(s).\n", len(flush.Marked), len(flush.Unmarked))
			return nil
		},
	}
}

func printRoster(c *cli.Context, people []community.Person, pending []attendance.PendingChange) {
	changed := make(map[string]struct{}, len(pending))
	for _, change := range pending {
		changed[change.PersonID] = struct{}{}
	}

	for _, person := range people {
		mark := "[ ]"
		if person.Present {
			mark = "[x]"
		}
		suffix := ""
		if _, ok := changed[person.ID]; ok {
			suffix = " *"
		}
		printf(c, "%s %s (%s, %s)%s\n", mark, person.Name, person.Type, person.ID, suffix)
	}
}
