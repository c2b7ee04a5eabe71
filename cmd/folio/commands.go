package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-folio/internal/calculator"
	"github.com/tartampluch/go-folio/internal/calendar"
	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/contact"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/i18n"
	"github.com/tartampluch/go-folio/internal/mcptools"
	"github.com/tartampluch/go-folio/internal/server"
	"github.com/tartampluch/go-folio/internal/units"
)

// cli carries the state shared by every subcommand.
type cli struct {
	clock engine.Clock

	envFile string
	lang    string
	debug   bool

	settings config.Settings
	catalog  *i18n.Catalog
	tr       *i18n.Translator
}

func newRootCmd(clock engine.Clock) *cobra.Command {
	c := &cli{clock: clock}

	root := &cobra.Command{
		Use:          config.CLIName,
		Short:        "Unit, date and arithmetic calculators",
		Version:      config.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, config.FlagEnvFile, config.DefaultEnvFile, config.FlagDescEnvFile)
	flags.StringVar(&c.lang, config.FlagLang, "", config.FlagDescLang)
	flags.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		c.convertCmd(),
		c.ageCmd(),
		c.diffCmd(),
		c.calcCmd(),
		c.evalCmd(),
		c.serveCmd(),
		c.mcpCmd(),
		c.relayTokenCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	setupLogging(cmd.ErrOrStderr(), c.debug)

	settings, err := config.LoadSettings(c.envFile)
	if err != nil {
		return err
	}
	if c.lang != "" {
		settings.Language = c.lang
	}
	c.settings = settings
	c.catalog = i18n.Load()
	c.tr = c.catalog.For(settings.Language)

	slog.Debug("Settings loaded",
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyLang, c.tr.Language(),
		config.LogKeyPort, settings.Port)
	return nil
}

func (c *cli) convertCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:     "convert VALUE FROM TO",
		Short:   "Convert a value between two units",
		Example: "  folio convert 175 cm in\n  folio convert 100 celsius fahrenheit",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[1], args[2]
			cat, err := resolveCategory(category, from, to)
			if err != nil {
				return err
			}
			v, ok := units.ConvertText(cat, from, to, args[0])
			if !ok {
				return fmt.Errorf("%s: %q", config.ErrValueNotNumber, args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", args[0], from, c.tr.Number(v, config.ResultDecimals), to)
			return err
		},
	}
	cmd.Flags().StringVar(&category, config.FlagCategory, "", config.FlagDescCategory)
	return cmd
}

// resolveCategory returns the named category, or the first one holding both units.
func resolveCategory(name, from, to string) (units.Category, error) {
	if name != "" {
		cat, ok := units.ParseCategory(name)
		if !ok {
			return "", fmt.Errorf("%s: %q", config.ErrUnknownCategory, name)
		}
		table, _ := units.Lookup(cat)
		for _, key := range []string{from, to} {
			if !table.Has(key) {
				return "", fmt.Errorf("%s: %q", config.ErrUnknownUnit, key)
			}
		}
		return cat, nil
	}
	for _, t := range units.Tables() {
		if t.Has(from) && t.Has(to) {
			return t.Category, nil
		}
	}
	return "", fmt.Errorf("%s: %q, %q", config.ErrNoCategory, from, to)
}

func (c *cli) ageCmd() *cobra.Command {
	var nowFlag, icsPath, name, reminder string
	cmd := &cobra.Command{
		Use:   "age BIRTH_DATE",
		Short: "Compute an age and optionally export the birthdays as iCalendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := calendar.ParseReminder(reminder); err != nil {
				return err
			}
			now, err := c.now(nowFlag)
			if err != nil {
				return err
			}
			birth, err := engine.ParseDate(args[0], now.Location())
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrBirthNotReady, err)
			}
			age, ok := engine.ComputeAge(birth, now)
			if !ok {
				return errors.New(config.ErrBirthNotReady)
			}
			if err := printLines(cmd, c.tr.AgeLines(age)); err != nil {
				return err
			}
			if icsPath == "" {
				return nil
			}

			if name == "" {
				name = c.settings.Owner.Name
			}
			if name == "" {
				name = config.AppName
			}
			data, err := calendar.BirthdayCalendar(name, birth, now, calendar.Options{
				Reminder: reminder,
				Stamp:    engine.Today(c.clock),
			})
			if err != nil {
				return err
			}
			return writeFile(icsPath, data)
		},
	}
	cmd.Flags().StringVar(&nowFlag, config.FlagNow, "", config.FlagDescNow)
	cmd.Flags().StringVar(&icsPath, config.FlagICS, "", config.FlagDescICS)
	cmd.Flags().StringVar(&name, config.FlagName, "", config.FlagDescName)
	cmd.Flags().StringVar(&reminder, config.FlagReminder, config.DefaultReminderValue, config.FlagDescReminder)
	return cmd
}

func (c *cli) diffCmd() *cobra.Command {
	var icsPath, summary, reminder string
	cmd := &cobra.Command{
		Use:     "diff START_DATE END_DATE",
		Short:   "Compute the calendar distance between two dates",
		Aliases: []string{"difference"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := calendar.ParseReminder(reminder); err != nil {
				return err
			}
			d, ok := engine.ComputeDifferenceISO(args[0], args[1])
			if !ok {
				return errors.New(config.ErrRangeNotReady)
			}
			if err := printLines(cmd, c.tr.DifferenceLines(d)); err != nil {
				return err
			}
			if icsPath == "" {
				return nil
			}

			data, err := calendar.RangeCalendar(summary, c.tr.Describe(d), d, calendar.Options{
				Reminder: reminder,
				Stamp:    engine.Today(c.clock),
			})
			if err != nil {
				return err
			}
			return writeFile(icsPath, data)
		},
	}
	cmd.Flags().StringVar(&icsPath, config.FlagICS, "", config.FlagDescICS)
	cmd.Flags().StringVar(&summary, config.FlagSummary, "", config.FlagDescSummary)
	cmd.Flags().StringVar(&reminder, config.FlagReminder, config.DefaultReminderValue, config.FlagDescReminder)
	return cmd
}

func (c *cli) calcCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "calc KEY...",
		Short:   "Press calculator keys in order and print the display",
		Example: "  folio calc 2 + 3 + 4 =\n  folio calc 5 / 0 =",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := calculator.ParseKeys(strings.Join(args, " "))
			if err != nil {
				return err
			}
			state := calculator.Run(keys...)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), state.Display)
			return err
		},
	}
}

func (c *cli) evalCmd() *cobra.Command {
	var radians bool
	cmd := &cobra.Command{
		Use:     "eval EXPRESSION",
		Short:   "Evaluate an arithmetic expression",
		Example: "  folio eval '2 × (3 + 4)^2 ÷ sin(30)'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := calculator.Degrees
			if radians {
				mode = calculator.Radians
			}
			v, err := calculator.Evaluate(strings.Join(args, " "), mode)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), calculator.FormatNumber(v))
			return err
		},
	}
	cmd.Flags().BoolVar(&radians, config.FlagRadians, false, config.FlagDescRadians)
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as an HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.FromSettings(c.settings).Start(cmd.Context())
		},
	}
}

func (c *cli) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Expose the calculators as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcptools.Serve(mcptools.NewServer(mcptools.New(c.clock, c.catalog)))
		},
	}
}

func (c *cli) relayTokenCmd() *cobra.Command {
	parent := &cobra.Command{
		Use:   "relay-token",
		Short: "Manage the mail relay access token",
	}
	parent.AddCommand(&cobra.Command{
		Use:   "set [TOKEN]",
		Short: "Store the relay access token in the system keyring (reads stdin without TOKEN)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New(config.ErrTokenEmpty)
				}
				token = line
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New(config.ErrTokenEmpty)
			}
			if err := contact.StoreToken(token); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.MsgTokenStored)
			return err
		},
	})
	return parent
}

// now is the evaluation instant: the --now date at midnight, or the clock.
func (c *cli) now(flag string) (time.Time, error) {
	current := c.clock.Now()
	if flag == "" {
		return current, nil
	}
	return engine.ParseDate(flag, current.Location())
}

func printLines(cmd *cobra.Command, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), l); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return nil
}
