package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arin/copygen/internal/ai"
	"github.com/arin/copygen/internal/config"
	"github.com/arin/copygen/internal/generate"
	"github.com/arin/copygen/internal/ui"
	"github.com/arin/copygen/internal/variant"
)

const maxDescriptionLen = 4000

func run(cmd *cobra.Command, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		description = readStdin()
	}
	if description == "" {
		return fmt.Errorf("please describe your product\n\nUsage: copygen <product description>\nExample: copygen 新款智能手表，续航7天，支持血氧监测")
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if endpoint != "" {
		settings.Endpoint = endpoint
	}
	if model != "" {
		settings.Model = model
	}
	snapshot := *settings

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := generate.New(ai.NewClient(nil), func() config.Settings { return snapshot })
	sp := ui.NewSpinner("Writing taglines...")
	view := ui.NewLiveView(os.Stderr, "  ", sp)

	sp.Start()
	sess, err := ctrl.Start(ctx, description, view)
	if err != nil {
		sp.Stop()
		return err
	}

	select {
	case <-ctx.Done():
		ctrl.Cancel()
	case <-sess.Done():
	}
	_, err = sess.Wait()
	view.Finish()

	dim := color.New(color.FgHiBlack)
	switch {
	case ai.IsCancelled(err):
		dim.Fprintln(os.Stderr, "  Generation cancelled.")
		return nil
	case err != nil:
		sp.Fail("Generation failed")
		return fmt.Errorf("generation failed: %w", err)
	}

	variants := view.Results()
	sp.Success(fmt.Sprintf("Generated %d taglines", len(variants)))

	if jsonOutput {
		if err := writeJSON(os.Stdout, variants); err != nil {
			return err
		}
	} else {
		ui.RenderVariants(os.Stdout, variants)
	}

	if copyIndex > 0 {
		return copyVariant(variants, copyIndex)
	}
	return nil
}

func writeJSON(w io.Writer, variants []variant.Variant) error {
	if variants == nil {
		variants = []variant.Variant{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(variants)
}

func copyVariant(variants []variant.Variant, n int) error {
	if n > len(variants) {
		return fmt.Errorf("cannot copy tagline %d: only %d were generated", n, len(variants))
	}
	if err := clipboard.WriteAll(variants[n-1].Content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, "  ✓ Copied tagline %d to the clipboard\n", n)
	return nil
}

func readStdin() string {
	info, err := os.Stdin.Stat()
	if err != nil {
		return ""
	}
	// Only read when data is piped in.
	if (info.Mode() & os.ModeCharDevice) != 0 {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxDescriptionLen+1))
	if err != nil {
		return ""
	}
	return clipDescription(strings.TrimSpace(string(data)))
}

// clipDescription limits s to maxDescriptionLen bytes without splitting a
// multi-byte character.
func clipDescription(s string) string {
	if len(s) <= maxDescriptionLen {
		return s
	}
	i := maxDescriptionLen
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}
