package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tkdr/teamgate/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// PrintPlayers outputs a list of player records
func (o *Output) PrintPlayers(players []*model.PlayerRecord) {
	if o.format == "json" {
		o.printJSON(players)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER ID\tACCOUNT\tNAME\tBIRTH YEAR\tNATIONAL ID\tBANNED")
	for _, p := range players {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%d\t%s\t%t\n",
			p.UserID, p.UserName, p.FirstName, p.LastName, p.BirthYear, p.GovID, p.Banned)
	}
	_ = w.Flush()
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}
