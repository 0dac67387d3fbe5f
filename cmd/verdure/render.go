package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
	"github.com/iw2rmb/verdure/view"
)

var (
	renderWidth  int
	renderMarkup bool
	renderMarks  []string
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a YAML document once and print it",
	Long: `Builds a view for the document and prints the rendered element tree,
either as terminal lines or, with --markup, as markup.

Example:
  verdure render --width 60 --mark 1:5=hl notes.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDoc(args[0])
		if err != nil {
			return err
		}
		out, err := renderDoc(doc, renderOptions{
			width:  renderWidth,
			markup: renderMarkup,
			marks:  renderMarks,
			logger: logger,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "truncate lines to this many cells (0 disables)")
	renderCmd.Flags().BoolVar(&renderMarkup, "markup", false, "print markup instead of terminal lines")
	renderCmd.Flags().StringArrayVar(&renderMarks, "mark", nil, "inline decoration as from:to=class (repeatable)")
}

type renderOptions struct {
	width  int
	markup bool
	marks  []string
	logger *zap.Logger
}

func renderDoc(doc *model.Node, opts renderOptions) (string, error) {
	decos := make([]*decoration.Decoration, 0, len(opts.marks))
	for _, m := range opts.marks {
		var from, to int
		var class string
		if _, err := fmt.Sscanf(m, "%d:%d=%s", &from, &to, &class); err != nil {
			return "", fmt.Errorf("mark %q: want from:to=class", m)
		}
		decos = append(decos, decoration.Inline(from, to, model.Attrs{"class": class}, nil))
	}
	set, err := decoration.Create(doc, decos)
	if err != nil {
		return "", err
	}

	mount := surface.NewElement("div", nil)
	v, err := view.New(mount, doc, view.Options{
		NodeViews:   demoNodeViews(opts.logger),
		Decorations: set,
		Logger:      opts.logger,
	})
	if err != nil {
		return "", err
	}
	defer func() {
		if err := v.Destroy(); err != nil {
			opts.logger.Warn("destroy view", zap.Error(err))
		}
	}()

	if opts.markup {
		return mount.String(), nil
	}
	return surface.Renderer{Style: surface.DefaultStyle(), Width: opts.width}.Render(mount), nil
}
