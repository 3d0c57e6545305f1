package main

import (
	"context"
	"fmt"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/config"
	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/talk"
)

const buildLong = `Build the deck from a Matplotlib checkout.

The release history slide reads the checkout's git tags. The deck is printed
by headless Chrome to the draft PDF, then linearized with qpdf into the final
PDF. Without qpdf the draft is copied unchanged.`

func newBuildCmd(deps *Dependencies, common *commonFlags) *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "build [checkout]",
		Short: "Build the deck PDF",
		Long:  buildLong,
		Args:  checkoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildCommand(cmd, deps, common, &flags, args)
		},
	}
	addBuildFlags(cmd.Flags(), &flags)
	return cmd
}

// buildCommand configures and runs one build. The root command shares it.
func buildCommand(cmd *cobra.Command, deps *Dependencies, common *commonFlags, flags *buildFlags, args []string) error {
	ctx := cmd.Context()
	cfg, _, err := configure(common, args, changedFlags(cmd.Flags(), flags), loggerFromContext(ctx))
	if err != nil {
		return withHint(err, "")
	}
	return withHint(runBuild(ctx, deps, cfg), cfg.Talk.Checkout)
}

// runBuild checks fonts, assembles every slide, prints the deck and writes
// the draft and final PDFs.
func runBuild(ctx context.Context, deps *Dependencies, cfg *config.Config) error {
	logger := loggerFromContext(ctx)

	fonts, err := deps.Fonts()
	if err != nil {
		return err
	}
	if fonts.Warning != "" {
		logger.Warn(fonts.Warning)
	}
	logger.Info("Fonts", "selection", fonts.String())

	p, err := resolveParams(cfg, fonts, deps.Now())
	if err != nil {
		return err
	}

	b, err := deps.NewBuilder(p.opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Debug("closing browser", "err", err)
		}
	}()

	deck, err := assemble(ctx, deps, p, b)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := b.Build(ctx, deck, p.style, p.meta)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Printed %d pages", res.Pages))
	if res.Pages != res.Slides {
		logger.Warn("Page count differs from slide count, a slide overflows its page",
			"pages", res.Pages, "slides", res.Slides)
	}

	if p.html != "" {
		if err := fileutil.WriteFileAtomic(deps.Fs, p.html, res.HTML, 0o644); err != nil {
			return fmt.Errorf("%w: %v", slidedeck.ErrWritePDF, err)
		}
		logger.Info("Wrote HTML", "path", p.html)
	}

	if err := slidedeck.WriteDeck(deps.Fs, p.draft, res.PDF); err != nil {
		return err
	}
	logger.Info("Wrote draft", "path", p.draft, "size", units.HumanSize(float64(len(res.PDF))))

	if err := finalize(ctx, deps, p); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%d slides)\n", p.final, res.Slides)
	return nil
}

// assemble runs every slide producer and stamps the logo on each slide.
func assemble(ctx context.Context, deps *Dependencies, p *buildParams, images talk.ImageLoader) (*slidedeck.Deck, error) {
	prog := newProgress(loggerFromContext(ctx))

	tc := p.talk
	tc.ListTags = deps.ListTags
	tc.Images = images

	deck, err := slidedeck.Assemble(ctx, p.style, talk.Stamp(p.style), talk.Steps(tc)...)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Assembled %d slides", deck.Len()))
	return deck, nil
}

// finalize produces the final PDF from the draft, linearized when asked
// and possible.
func finalize(ctx context.Context, deps *Dependencies, p *buildParams) error {
	logger := loggerFromContext(ctx)

	if !p.linearize {
		if err := fileutil.CopyFile(deps.Fs, p.draft, p.final); err != nil {
			return fmt.Errorf("%w: %v", slidedeck.ErrWritePDF, err)
		}
		logger.Info("Copied draft", "path", p.final)
		return nil
	}

	report, err := deps.PostProcess(ctx, deps.Fs, p.draft, p.final)
	if err != nil {
		return err
	}
	switch {
	case report.Fallback != nil:
		logger.Warn("qpdf failed, copied the draft instead", "err", report.Fallback)
	case report.Method == slidedeck.MethodCopy:
		logger.Info("qpdf not found, copied the draft", "path", p.final)
	case report.Warnings:
		logger.Warn("qpdf finished with warnings", "path", p.final)
	default:
		logger.Info("Linearized", "path", p.final, "tool", report.Tool)
	}
	return nil
}
