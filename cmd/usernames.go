// cmd/usernames.go
package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fauxchat/fauxchat-cli/internal/config"
	"github.com/fauxchat/fauxchat-cli/internal/tokenizer"
	"github.com/fauxchat/fauxchat-cli/internal/ui"
	"github.com/fauxchat/fauxchat-cli/internal/usernames"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var usernamesCmd = &cobra.Command{
	Use:   "usernames",
	Short: "Tokenize a username list and print the first batch",
	Long: `Reads one username per line, tokenizes each with a BERT cased WordPiece
vocabulary and prints the first batch of padded input ids, token type ids and
attention masks.

The bert-base-cased vocabulary is built in. Pass --vocab (or set vocab_file)
to tokenize with another vocab.txt.`,
	Args: cobra.NoArgs,
	RunE: runUsernames,
}

func runUsernames(cmd *cobra.Command, args []string) error {
	file := stringFlagOr(cmd, "file", cfg.UsernamesFile)
	vocab := stringFlagOr(cmd, "vocab", cfg.VocabFile)
	batchSize := intFlagOr(cmd, "batch-size", cfg.BatchSize)
	format := stringFlagOr(cmd, "output", cfg.Output)

	if !slices.Contains(config.OutputFormats, format) {
		return fmt.Errorf("%w, got %q", config.ErrInvalidOutput, format)
	}

	tok, err := loadTokenizer(vocab)
	if err != nil {
		return err
	}

	src, err := usernames.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	loader, err := usernames.NewLoader(src, tok, batchSize)
	if err != nil {
		return err
	}
	batch, err := loader.First()
	if err != nil {
		return err
	}
	shape := batch.Shape()
	logger.Debug("built batch", zap.Int("records", batch.Len()), zap.Ints("shape", shape[:]))

	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		return ui.WriteYAML(out, batch)
	case "table":
		return writeBatchTable(out, batch, tok.PadID())
	default:
		return ui.WriteJSON(out, batch, ui.IsTTY())
	}
}

// loadTokenizer reads path, or the bundled vocabulary when path is empty
func loadTokenizer(path string) (*tokenizer.Tokenizer, error) {
	if path == "" {
		tok, err := tokenizer.BertBaseCased()
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded bundled vocabulary", zap.Int("tokens", tok.Vocab().Len()))
		return tok, nil
	}

	tok, err := tokenizer.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded vocabulary", zap.String("path", path), zap.Int("tokens", tok.Vocab().Len()))
	return tok, nil
}

// writeBatchTable prints one row per record with its tokens and ids
func writeBatchTable(w io.Writer, batch *usernames.Batch, padID int32) error {
	if batch.Len() == 0 {
		_, err := fmt.Fprintln(w, "empty batch")
		return err
	}

	rows := make([][]string, 0, batch.Len())
	for i, name := range batch.Names {
		ids := make([]string, len(batch.InputIDs[i]))
		for j, id := range batch.InputIDs[i] {
			ids[j] = fmt.Sprint(id)
		}
		rows = append(rows, []string{
			name,
			strings.Join(batch.Tokens[i], " "),
			strings.Join(ids, " "),
		})
	}

	shape := batch.Shape()
	_, err := fmt.Fprintf(w, "%s\nshape [%d %d], pad id %d\n",
		ui.Table([]string{"NAME", "TOKENS", "INPUT IDS"}, rows, func(row, col int) bool {
			return col == 0 && batch.Names[row] == ""
		}), shape[0], shape[1], padID)
	return err
}

func init() {
	usernamesCmd.Flags().StringP("file", "f", "", "username list (default from config, usernames.txt)")
	usernamesCmd.Flags().String("vocab", "", "WordPiece vocab.txt (default from config, bundled bert-base-cased)")
	usernamesCmd.Flags().IntP("batch-size", "b", 0, "records per batch (default from config, 32)")
	usernamesCmd.Flags().StringP("output", "o", "", "output format: json, yaml or table (default from config, json)")
	_ = usernamesCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
	_ = usernamesCmd.RegisterFlagCompletionFunc("file", completeFiles(0, "txt"))
	_ = usernamesCmd.RegisterFlagCompletionFunc("vocab", completeFiles(0, "txt"))

	rootCmd.AddCommand(usernamesCmd)
}
