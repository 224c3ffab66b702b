package shell

import (
	"fmt"
	"io"

	"github.com/mbagrov/chatshell/internal/models"
)

// Render writes a terminal rendition of the view: current page, the
// day-grouped sidebar, and the active session's transcript (most recent
// turn first, as the server sends it).
func Render(w io.Writer, v *View) {
	fmt.Fprintf(w, "[%s]", v.Page)
	if v.Username != "" {
		fmt.Fprintf(w, " user=%s", v.Username)
	}
	if v.Session != "" {
		fmt.Fprintf(w, " session=%q", v.Session)
	}
	fmt.Fprintln(w)

	for _, day := range v.Days {
		fmt.Fprintf(w, "  %s:\n", day.Date)
		for _, label := range day.Sessions {
			marker := "  "
			if label == v.Session {
				marker = "* "
			}
			fmt.Fprintf(w, "    %s%s\n", marker, label)
		}
	}

	for _, msg := range v.Messages {
		prefix := "you"
		if msg.Role == models.RoleSuccess {
			prefix = "bot"
		}
		fmt.Fprintf(w, "  %s> %s\n", prefix, msg.Text)
	}
}
