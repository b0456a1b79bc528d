package column

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
	"github.com/thenoetrevino/taskflow/internal/cli/styles"
)

// ColumnSummary is one row of the column list
type ColumnSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	Tasks    int    `json:"tasks"`
	Terminal bool   `json:"terminal"`
}

// ColumnList renders the column rows
type ColumnList []ColumnSummary

// Render prints one row per column in board order
func (l ColumnList) Render() string {
	rows := make([]string, 0, len(l))
	for _, col := range l {
		row := fmt.Sprintf("%d. %s %s %s",
			col.Position,
			styles.TitleStyle.Render(col.Title),
			styles.SubtitleStyle.Render("("+col.ID+")"),
			styles.ValueStyle.Render(fmt.Sprintf("%d tasks", col.Tasks)),
		)
		if col.Terminal {
			row += " " + styles.SuccessStyle.Render("✓")
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns in board order",
		RunE:  handler.Command(runList),
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(_ context.Context, c *cli.CLI, _ *cobra.Command) (any, error) {
	board := c.Session.Board()
	terminal := c.App.Config.Board.TerminalColumn

	list := make(ColumnList, 0, len(board.ColumnOrder))
	for i, col := range board.OrderedColumns() {
		list = append(list, ColumnSummary{
			ID:       string(col.ID),
			Title:    col.Title,
			Position: i,
			Tasks:    col.Len(),
			Terminal: string(col.ID) == terminal,
		})
	}
	return list, nil
}
