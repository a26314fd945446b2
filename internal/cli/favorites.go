package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/timefocus/internal/app"
)

func newFavoritesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite task descriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, printFavorites)
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <description>",
		Short: "Add or remove a favorite",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.TrimSpace(strings.Join(args, " "))
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				on, err := a.ToggleFavorite(desc)
				if err != nil {
					return err
				}
				if on {
					fmt.Fprintf(w, "Added %q to favorites\n", desc)
				} else {
					fmt.Fprintf(w, "Removed %q from favorites\n", desc)
				}
				return nil
			})
		},
	}

	queueCmd := &cobra.Command{
		Use:   "queue <description|number>",
		Short: "Add a favorite to the task queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(w io.Writer, a *app.App) error {
				desc := strings.Join(args, " ")
				favs := a.Favorites()
				if n, ok := position(desc, len(favs)); ok {
					desc = favs[n]
				}
				t, err := a.QueueFavorite(desc)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Queued %q\n", t.Description)
				return nil
			})
		},
	}

	cmd.AddCommand(toggle, queueCmd)
	return cmd
}

func printFavorites(w io.Writer, a *app.App) error {
	favs := a.Favorites()
	if len(favs) == 0 {
		fmt.Fprintln(w, "No favorites.")
		return nil
	}
	for i, f := range favs {
		fmt.Fprintf(w, "%2d. %s\n", i+1, f)
	}
	return nil
}

// position parses a 1-based index into a list of length n.
func position(s string, n int) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}
