package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tns/internal/logging"
	"github.com/thoreinstein/tns/internal/project"
)

var createID string

func init() {
	createCmd.Flags().StringVar(&createID, "id", "",
		"reverse-DNS application id (default: "+project.DefaultIDPrefix+"<name>)")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Long: `Create a project directory named <name> with an empty app directory and a
.tnsproject descriptor recording the application id.

The project is created under --path, or the current directory.`,
	Example: `  # Create with the default id org.nativescript.Hello
  tns create Hello

  # Create with an explicit id
  tns create Hello --id com.example.hello

See Also: tns platform add`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	parent, err := workDir()
	if err != nil {
		return err
	}

	proj, err := project.Create(parent, args[0], createID)
	if err != nil {
		return classify(err)
	}

	logging.FromContext(cmd.Context()).Debug("project created", "dir", proj.Dir, "id", proj.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Project %s was successfully created at %s.\n", proj.Name, proj.Dir)
	return nil
}
