// pricematch — сопоставление прайса и списка товаров из командной строки.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"price-matcher/internal/config"
	"price-matcher/internal/fileio"
	"price-matcher/internal/pricematch/model"
	"price-matcher/internal/pricematch/service"
)

func main() {
	config.ConsoleLogger("info")

	app := &cli.App{
		Name:  "pricematch",
		Usage: "match a product list against a price sheet",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				config.ConsoleLogger("debug")
			}
			return nil
		},
		Commands: []*cli.Command{
			matchCommand(),
			parseCommand(),
			rulesCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("pricematch")
		os.Exit(1)
	}
}

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "print lineNumber<TAB>price for every matched product",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prices", Aliases: []string{"p"}, Required: true, Usage: "price sheet (xlsx, xls, csv, tsv, txt or - for stdin)"},
			&cli.StringFlag{Name: "products", Aliases: []string{"l"}, Required: true, Usage: "product list (xlsx, xls, csv, tsv, txt or - for stdin)"},
			&cli.BoolFlag{Name: "locked", Usage: "apply remark deductions"},
			&cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.String("prices") == "-" && c.String("products") == "-" {
				return fmt.Errorf("only one input can be read from stdin")
			}
			eng, err := newEngine()
			if err != nil {
				return err
			}
			prices, err := readInput(c.String("prices"))
			if err != nil {
				return err
			}
			products, err := readInput(c.String("products"))
			if err != nil {
				return err
			}

			res, err := eng.Run(c.Context, prices, products, model.ModeFromLocked(c.Bool("locked")))
			if err != nil {
				return err
			}
			log.Info().
				Int("matched", res.Stats.Matched).
				Int("unmatched", res.Stats.Unmatched).
				Int("total", res.Stats.Total).
				Str("mode", string(res.Mode)).
				Msg("match done")
			for _, u := range res.Unmatched {
				log.Debug().Str("line", u.LineNumber).Str("category", u.Category).
					Str("description", u.Description).Str("suggestion", u.Suggestion).Msg("unmatched")
			}

			if c.Bool("json") {
				return printJSON(c.App.Writer, res)
			}
			if res.Text != "" {
				_, err = fmt.Fprintln(c.App.Writer, res.Text)
			}
			return err
		},
	}
}

func parseCommand() *cli.Command {
	parse := func(kind string, fn func(*service.Engine, string) any) *cli.Command {
		return &cli.Command{
			Name:      kind,
			Usage:     "parse " + kind + " and print records as JSON",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return fmt.Errorf("%s: expected exactly one FILE argument", kind)
				}
				eng, err := newEngine()
				if err != nil {
					return err
				}
				text, err := readInput(c.Args().First())
				if err != nil {
					return err
				}
				return printJSON(c.App.Writer, fn(eng, text))
			},
		}
	}
	return &cli.Command{
		Name:  "parse",
		Usage: "show how a price sheet or product list is parsed",
		Subcommands: []*cli.Command{
			parse("prices", func(e *service.Engine, s string) any { return e.ParsePrices(s) }),
			parse("products", func(e *service.Engine, s string) any { return e.ParseProducts(s) }),
		},
	}
}

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "print active matching rules",
		Action: func(c *cli.Context) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, eng.Rules())
		},
	}
}

// newEngine: правила из config.yaml / окружения, как у сервера.
func newEngine() (*service.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return service.New(cfg.Rules), nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		return fileio.ReadAnyText(os.Stdin, "")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return fileio.ReadAnyText(f, path)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
