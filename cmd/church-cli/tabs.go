package main

import (
	"github.com/urfave/cli/v2"

	"github.com/topi314/church-tools/server/messages"
	"github.com/topi314/church-tools/server/ministry"
)

func tabsCommand() *cli.Command {
	return &cli.Command{
		Name:      "tabs",
		Usage:     "Show which tabs a ministry screen shows.",
		ArgsUsage: "<ministry-type>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "master", Usage: "show the tabs of a master user, asks the API when not set"},
		},
		Action: func(c *cli.Context) error {
			t, ok := ministry.ParseType(c.Args().First())
			if !ok {
				t = ministry.Type(c.Args().First())
			}

			master := c.Bool("master")
			if !c.IsSet("master") {
				user, err := newClient(c).GetMe(c.Context)
				if err != nil {
					return userError(messages.OpLoad, err)
				}
				master = user.IsMaster
			}

			for _, v := range ministry.Navigation(t, master) {
				mark := "-"
				if v.Enabled {
					mark = "+"
				}
				printf(c, "%s %s\n", mark, v.Tab)
			}
			return nil
		},
	}
}
