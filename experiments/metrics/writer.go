package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	AgentConfigsFile = "agent_configs.csv"
	GameRecordsFile  = "game_records.csv"
	MoveRecordsFile  = "move_records.csv"
)

var (
	agentConfigsHeader = []string{"id", "strategy", "goroutines", "duration", "simulations", "min_simulations", "exploration", "confidence", "cutoff", "seed"}
	gameRecordsHeader  = []string{"id", "uuid", "agent1", "agent2", "starting_player", "winner", "winning_player", "start_time", "end_time", "duration", "total_moves"}
	moveRecordsHeader  = []string{"game", "step", "player", "column", "stage", "trapped", "invalid", "duration", "budget", "rollouts", "full_playouts", "timed_out"}
)

type Writer struct {
	dir string
}

// NewWriter creates <baseDir>/<name>/<timestamp> and writes all records there.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	dir := filepath.Join(baseDir, name, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{dir: dir}, nil
}

// Dir is the directory the writer stores its files in.
func (w *Writer) Dir() string {
	return w.dir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Strategy,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Simulations),
			strconv.Itoa(config.MinSimulations),
			strconv.FormatFloat(config.Exploration, 'g', -1, 64),
			strconv.FormatFloat(config.Confidence, 'g', -1, 64),
			strconv.Itoa(config.Cutoff),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write(AgentConfigsFile, agentConfigsHeader, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.UUID,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			strconv.Itoa(record.WinningPlayer),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write(GameRecordsFile, gameRecordsHeader, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Column),
			record.Stage,
			strconv.FormatBool(record.Trapped),
			strconv.FormatBool(record.Invalid),
			record.Duration.String(),
			strconv.Itoa(record.Budget),
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.FullPlayouts),
			strconv.FormatBool(record.TimedOut),
		})
	}
	return w.write(MoveRecordsFile, moveRecordsHeader, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
