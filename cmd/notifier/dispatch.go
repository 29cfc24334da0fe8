package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"elearning-notifier/internal/domain"
)

func newDispatchCmd(opts *rootOptions) *cobra.Command {
	var (
		file string
		id   string
	)

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Send the email for one notification record read from a JSON file",
		Example: `  notifier dispatch --id n1 --file notification.json
  echo '{"userId":"u1","type":"grade","title":"Midterm Graded","message":"You scored 92"}' | notifier dispatch --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			n, err := readNotification(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if id != "" {
				n.ID = id
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome := a.dispatcher.Dispatch(cmd.Context(), n.ID, n)
			fmt.Fprintln(cmd.OutOrStdout(), outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "Notification JSON file, or - for stdin")
	cmd.Flags().StringVar(&id, "id", "", "Notification id (overrides the id field in the file)")
	return cmd
}

func readNotification(stdin io.Reader, file string) (*domain.Notification, error) {
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open notification file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var n domain.Notification
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("failed to parse notification: %w", err)
	}
	return &n, nil
}
