package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkoosis/printer/internal/version"
	"github.com/dkoosis/printer/pkg/filesize"
	"github.com/dkoosis/printer/pkg/progress"
	"github.com/dkoosis/printer/printer"
)

func (a *app) newTableCmd() *cobra.Command {
	var format, name string
	var noBorder bool

	cmd := &cobra.Command{
		Use:   "table FILE",
		Short: "Render a CSV or YAML file as a table",
		Long: `Render a CSV file (first record is the header) or a YAML list of mappings as a
table. FILE "-" reads CSV from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0], name)
			if err != nil {
				return err
			}
			t.ColumnLimit = a.cfg.TableColumnLimit

			switch strings.ToLower(format) {
			case "text", "":
				opts := a.cfg.RenderOptions()
				opts.HideBorder = noBorder
				return a.out.WriteTable(t, opts)
			case "csv":
				s, err := t.CSV()
				if err != nil {
					return err
				}
				_, err = io.WriteString(a.stdout, s)
				return err
			case "html":
				s, err := t.HTML()
				if err != nil {
					return err
				}
				_, err = io.WriteString(a.stdout, s)
				return err
			case "markdown", "md":
				return t.Markdown(a.stdout)
			}
			return fmt.Errorf("%w: unknown format %q (must be: text, csv, html, markdown)", errUsage, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, csv, html, markdown")
	cmd.Flags().StringVar(&name, "name", "", "table name (defaults to the file name)")
	cmd.Flags().BoolVar(&noBorder, "no-border", false, "omit border lines and separators in text output")
	return cmd
}

func (a *app) newSizeCmd() *cobra.Command {
	var total bool

	cmd := &cobra.Command{
		Use:   "size SIZE...",
		Short: "Format byte counts such as 1536 or \"1.5 MB\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes := make([]filesize.FileSize, len(args))
			var sum filesize.FileSize
			for i, arg := range args {
				fs, err := filesize.Parse(arg)
				if err != nil {
					return err
				}
				sizes[i] = fs
				sum = sum.Add(fs)
			}

			theme := a.out.Theme()
			for i, fs := range sizes {
				if err := a.out.WriteAligned(args[i], fs.Pretty(sizeWidth, unitWidth, theme), printer.AlignOptions{}); err != nil {
					return err
				}
			}
			if total {
				return a.out.WriteAligned("total", sum.Pretty(sizeWidth, unitWidth, theme), printer.AlignOptions{Dim: true})
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&total, "total", false, "also print the sum")
	return cmd
}

// Widths that line up every size up to "1023.99 EB".
const (
	sizeWidth = 10
	unitWidth = 2
)

func (a *app) newWrapCmd() *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "wrap",
		Short: "Word-wrap stdin to the console width",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := io.ReadAll(a.stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			body := strings.TrimRight(string(text), "\n")
			if indent <= 0 {
				return a.out.WriteLine(body)
			}
			return a.out.Group(printer.GroupOptions{Indent: indent}, func() error {
				return a.out.WriteLine(body)
			})
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 0, "indent every line by this many columns")
	return cmd
}

func (a *app) newTitleCmd() *cobra.Command {
	var center bool
	var textCase string

	cmd := &cobra.Command{
		Use:   "title TEXT...",
		Short: "Print an underlined title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := printer.TitleOptions{}
			switch strings.ToLower(textCase) {
			case "", "asis":
			case "upper":
				opts.Case = printer.CaseUpper
			case "title":
				opts.Case = printer.CaseTitle
			default:
				return fmt.Errorf("%w: unknown case %q (must be: asis, upper, title)", errUsage, textCase)
			}

			title := strings.Join(args, " ")
			if center {
				return a.out.WriteCenteredTitle(title, opts)
			}
			return a.out.WriteTitle(title, opts)
		},
	}
	cmd.Flags().BoolVar(&center, "center", false, "center the title in the console width")
	cmd.Flags().StringVar(&textCase, "case", "asis", "title case: asis, upper, title")
	return cmd
}

func (a *app) newProgressCmd() *cobra.Command {
	var (
		total   int64
		delay   time.Duration
		message string
		lying   bool
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Run a simulated task with a progress bar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bar, err := progress.New(total, progress.Options{Width: a.cfg.ProgressWidth, Lying: lying})
			if err != nil {
				return err
			}
			session, err := a.out.StartProgress(bar)
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			for i := int64(0); i < total; i++ {
				if err := session.Eval(i, message); err != nil {
					return err
				}
				time.Sleep(delay)
			}
			return session.Finish()
		},
	}
	cmd.Flags().Int64Var(&total, "total", 10, "number of steps")
	cmd.Flags().DurationVar(&delay, "delay", 100*time.Millisecond, "time per step")
	cmd.Flags().StringVar(&message, "message", "", "message shown after the bar")
	cmd.Flags().BoolVar(&lying, "lying", false, "mark the time estimate as unreliable")
	return cmd
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := printer.AlignOptions{Column: 10}
			if err := a.out.WriteAligned("version", version.Version, opts); err != nil {
				return err
			}
			if err := a.out.WriteAligned("commit", version.CommitHash, opts); err != nil {
				return err
			}
			return a.out.WriteAligned("built", version.BuildDate, opts)
		},
	}
}

func baseName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
