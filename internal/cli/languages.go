package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whichlang/whichlang/internal/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the game can ask about",
	Run: func(cmd *cobra.Command, args []string) {
		for _, tag := range language.All {
			fmt.Printf("%-12s %s\n", tag, strings.Join(tag.Exts(), " "))
		}
	},
}
