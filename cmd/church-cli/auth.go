package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/topi314/church-tools/server/messages"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the session token.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", EnvVars: []string{"CHURCH_EMAIL"}},
			&cli.StringFlag{Name: "password", EnvVars: []string{"CHURCH_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			reader := bufio.NewReader(c.App.Reader)

			email := c.String("email")
			if email == "" {
				printf(c, "E-mail: ")
				email = readLine(reader)
			}
			password := c.String("password")
			if password == "" {
				printf(c, "Senha: ")
				password = readLine(reader)
			}
			if email == "" || password == "" {
				return cli.Exit("Informe e-mail e senha.", 2)
			}

			user, err := newClient(c).Login(c.Context, email, password)
			if err != nil {
				return userError(messages.OpLoad, err)
			}

			printf(c, "Bem-vindo(a), %s!\n", user.Name)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the stored session token.",
		Action: func(c *cli.Context) error {
			if err := newClient(c).Logout(c.Context); err != nil {
				return fmt.Errorf("failed to logout: %w", err)
			}
			printf(c, "Sessão encerrada.\n")
			return nil
		},
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
