package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/brendan.keane/edgefn/pkg/functions"
)

var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#98C379")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#E06C75")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#61AFEF"))
)

// PrintResponse writes the classified response to stdout
func PrintResponse(resp *functions.Response, includeHeaders bool) {
	if includeHeaders {
		fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf("HTTP %d", resp.StatusCode)))
		for key, values := range resp.Header {
			for _, value := range values {
				fmt.Fprintln(os.Stderr, headerStyle.Render(key+": ")+value)
			}
		}
		fmt.Fprintln(os.Stderr)
	}

	switch resp.Data.Kind() {
	case functions.DataJSON:
		value, _ := resp.Data.JSON()
		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			os.Stdout.Write(resp.Data.Bytes())
			return
		}
		fmt.Println(string(pretty))
	case functions.DataText:
		text, _ := resp.Data.Text()
		fmt.Print(text)
	default:
		os.Stdout.Write(resp.Data.Bytes())
	}
}

// PrintError writes a styled error summary to stderr
func PrintError(err error) {
	label := "error"
	if fErr, ok := err.(*functions.Error); ok {
		label = string(fErr.Type)
		if fErr.StatusCode != 0 {
			label = fmt.Sprintf("%s %d", fErr.Type, fErr.StatusCode)
		}
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render(label)+" "+err.Error())
}
