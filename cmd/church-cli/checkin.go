package main

import (
	"bufio"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/topi314/church-tools/server/checkin"
	"github.com/topi314/church-tools/server/messages"
)

func checkinCommand() *cli.Command {
	return &cli.Command{
		Name:      "checkin",
		Usage:     "Check into the event of a scanned QR code.",
		ArgsUsage: "<code>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm without asking"},
		},
		Action: func(c *cli.Context) error {
			code := strings.Join(c.Args().Slice(), " ")

			scanner := checkin.NewScanner(checkin.Config{}, newClient(c)).
				WithAfterFunc(func(time.Duration, func()) func() bool {
					return func() bool { return true }
				})
			defer scanner.Close()

			session, err := scanner.Scan(c.Context, code)
			if session != nil && session.EventName != "" {
				printf(c, "Evento: %s\n", session.EventName)
			}
			if err != nil {
				return userError(messages.OpCheckin, err)
			}
			printf(c, "%s\n", session.StatusMessage)

			if session.Outcome != checkin.OutcomeEventFound {
				return nil
			}

			if !c.Bool("yes") {
				printf(c, "Confirmar check-in? [s/N] ")
				answer, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "s" && answer != "sim" && answer != "y" && answer != "yes" {
					return nil
				}
			}

			session, err = scanner.Confirm(c.Context)
			if err != nil {
				return userError(messages.OpCheckin, err)
			}
			printf(c, "%s\n", session.StatusMessage)
			return nil
		},
	}
}
