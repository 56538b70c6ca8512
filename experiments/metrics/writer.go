package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores the log of a match under one directory.
type Writer struct {
	baseDir string
}

func NewWriter(baseDir string) (*Writer, error) {
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteGame(game GameMetric) (err error) {
	path := filepath.Join(w.baseDir, fmt.Sprintf("game_%s.json", game.ID))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game file: %w", err)
	}
	defer closeFile(f, &err)

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(game); err != nil {
		return fmt.Errorf("failed to write game: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoves(gameID string, moves []MoveMetric) (err error) {
	path := filepath.Join(w.baseDir, fmt.Sprintf("moves_%s.csv", gameID))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create moves file: %w", err)
	}
	defer closeFile(f, &err)

	return writeMoves(f, moves)
}

func writeMoves(out io.Writer, moves []MoveMetric) error {
	writer := csv.NewWriter(out)

	header := []string{"step", "player", "agent", "card", "from_row", "from_col", "to_row", "to_col", "passed", "think", "nodes", "depth", "score"}
	err := writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write moves header: %w", err)
	}

	for _, m := range moves {
		row := []string{
			strconv.Itoa(m.Step),
			m.Player.String(),
			m.Agent,
			m.Card,
			strconv.Itoa(m.Move.From.Row),
			strconv.Itoa(m.Move.From.Col),
			strconv.Itoa(m.Move.To.Row),
			strconv.Itoa(m.Move.To.Col),
			strconv.FormatBool(m.Passed),
			m.Think.Round(time.Microsecond).String(),
			strconv.FormatInt(m.Search.Nodes, 10),
			strconv.Itoa(m.Search.Depth),
			strconv.Itoa(m.Search.Score),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush moves: %w", err)
	}
	return nil
}

// closeFile reports a close failure through err unless an earlier error is
// already set.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close %s: %w", f.Name(), cerr)
	}
}
