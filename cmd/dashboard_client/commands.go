package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/kurochkinivan/dashboard_client/internal/app"
	"github.com/kurochkinivan/dashboard_client/internal/config"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/urfave/cli/v3"
)

var version = "dev"

type action func(ctx context.Context, cmd *cli.Command, a *app.App) error

func cmd(handler *log.Logger) *cli.Command {
	return &cli.Command{
		Name:    "dashboard_client",
		Usage:   "Operations dashboard client",
		Version: version,
		Flags:   flags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := parseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, err
			}

			handler.SetLevel(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			uploadCommand(),
			watchCommand(),
			filesCommand(),
			reportCommand(),
			sendCommand(),
			scheduleCommand(),
			leadersCommand(),
			configCommand(),
		},
	}
}

// run builds the App from the command flags and hands it to fn.
func run(fn action) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
		if !ok {
			return errors.New("failed to get logger from context")
		}

		cfg := config.Load(cmd)

		return fn(ctx, cmd, app.New(logger, cfg, os.Stdout))
	}
}

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload zip archives in one request",
		ArgsUsage: "FILE...",
		Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
			return a.Upload(ctx, cmd.Args().Slice())
		}),
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Upload new archives from the watch directory and export daily reports",
		Action: run(func(ctx context.Context, _ *cli.Command, a *app.App) error {
			return a.Watch(ctx)
		}),
	}
}

func filesCommand() *cli.Command {
	return &cli.Command{
		Name:  "files",
		Usage: "Manage archives stored by the dashboard",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List uploaded archives",
				Action: run(func(ctx context.Context, _ *cli.Command, a *app.App) error {
					return a.ListFiles(ctx)
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete an uploaded archive",
				ArgsUsage: "NAME",
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					name, err := requiredArg(cmd, "NAME")
					if err != nil {
						return err
					}

					return a.DeleteFile(ctx, name)
				}),
			},
		},
	}
}

func exportFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "export",
		Aliases: []string{"o"},
		Usage:   "Write the report to `PATH` (.pdf, .xlsx or .csv)",
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Show operation reports",
		Commands: []*cli.Command{
			{
				Name:      "daily",
				Usage:     "Show the report of one day",
				ArgsUsage: "YYYY-MM-DD",
				Flags:     []cli.Flag{exportFlag()},
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					date, err := requiredArg(cmd, "YYYY-MM-DD")
					if err != nil {
						return err
					}

					return a.DailyReport(ctx, date, cmd.String("export"))
				}),
			},
			{
				Name:      "monthly",
				Usage:     "Show the report of one month",
				ArgsUsage: "YYYY-MM",
				Flags:     []cli.Flag{exportFlag()},
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					month, err := requiredArg(cmd, "YYYY-MM")
					if err != nil {
						return err
					}

					return a.MonthlyReport(ctx, month, cmd.String("export"))
				}),
			},
		},
	}
}

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send the daily report to the WeCom group",
		ArgsUsage: "YYYY-MM-DD",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Set target group (test, prod)",
				Value: string(domain.EnvironmentTest),
			},
		},
		Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
			date, err := requiredArg(cmd, "YYYY-MM-DD")
			if err != nil {
				return err
			}

			return a.SendReport(ctx, date, cmd.String("env"))
		}),
	}
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Manage the scheduled daily report",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the schedule",
				Action: run(func(ctx context.Context, _ *cli.Command, a *app.App) error {
					return a.ScheduleStatus(ctx)
				}),
			},
			{
				Name:  "set",
				Usage: "Update the schedule",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "enabled",
						Usage: "Enable the scheduled report",
						Value: true,
					},
					&cli.StringFlag{
						Name:  "at",
						Usage: "Set send time as `HH:MM`, keeps the current time when empty",
					},
				},
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					return a.SetSchedule(ctx, cmd.Bool("enabled"), cmd.String("at"))
				}),
			},
		},
	}
}

func leaderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "team", Usage: "Set team name"},
		&cli.StringFlag{Name: "account", Usage: "Set account id"},
		&cli.StringFlag{Name: "name", Usage: "Set leader name"},
	}
}

func leaderFromFlags(cmd *cli.Command) domain.TeamLeader {
	return domain.TeamLeader{
		TeamName:  cmd.String("team"),
		AccountID: cmd.String("account"),
		Name:      cmd.String("name"),
	}
}

func leadersCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaders",
		Usage: "Manage team leaders",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List team leaders",
				Action: run(func(ctx context.Context, _ *cli.Command, a *app.App) error {
					return a.ListTeamLeaders(ctx)
				}),
			},
			{
				Name:  "add",
				Usage: "Add a team leader",
				Flags: leaderFlags(),
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					leader := leaderFromFlags(cmd)
					return a.AddTeamLeader(ctx, &leader)
				}),
			},
			{
				Name:      "update",
				Usage:     "Change the given fields of a team leader",
				ArgsUsage: "ID",
				Flags:     leaderFlags(),
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					id, err := idArg(cmd)
					if err != nil {
						return err
					}

					return a.UpdateTeamLeader(ctx, id, leaderFromFlags(cmd))
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete a team leader",
				ArgsUsage: "ID",
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					id, err := idArg(cmd)
					if err != nil {
						return err
					}

					return a.DeleteTeamLeader(ctx, id)
				}),
			},
			{
				Name:      "import",
				Usage:     "Create team leaders from a CSV file with the header team_name,account_id,name",
				ArgsUsage: "FILE",
				Action: run(func(ctx context.Context, cmd *cli.Command, a *app.App) error {
					file, err := requiredArg(cmd, "FILE")
					if err != nil {
						return err
					}

					return a.ImportTeamLeaders(ctx, file)
				}),
			},
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write a configuration file with default values",
				ArgsUsage: "FILE",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path, err := requiredArg(cmd, "FILE")
					if err != nil {
						return err
					}

					if err := config.WriteDefault(path); err != nil {
						return err
					}

					fmt.Fprintf(os.Stdout, "config written to %s\n", path)

					return nil
				},
			},
		},
	}
}

func requiredArg(cmd *cli.Command, name string) (string, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return "", &domain.ValidationError{Reason: fmt.Sprintf("missing %s argument", name)}
	}

	return arg, nil
}

func idArg(cmd *cli.Command) (int, error) {
	arg, err := requiredArg(cmd, "ID")
	if err != nil {
		return 0, err
	}

	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Reason: fmt.Sprintf("invalid id %q", arg)}
	}

	return id, nil
}

func parseLevel(level string) (log.Level, error) {
	l, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}

	return l, nil
}
