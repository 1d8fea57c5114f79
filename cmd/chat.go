package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/KaramelBytes/wardbot/internal/query"
	"github.com/spf13/cobra"
)

var (
	chatWorkspace   string
	chatHospital    string
	chatPredictions string
	chatNoPrompt    bool
)

const chatHelp = `Commands:
  :load hospital <file>      replace the hospital dataset
  :load predictions <file>   replace the predictions dataset
  :presets                   list preset questions
  :preset <n>                ask preset question n
  :help                      show this help
  :quit                      leave
Anything else is asked as a question.`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question loop over stdin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), chatWorkspace, "", "")
		if err != nil {
			return err
		}
		defer s.Close()
		if chatHospital != "" {
			s.load(dataset.SlotHospital, chatHospital, true)
		}
		if chatPredictions != "" {
			s.load(dataset.SlotPredictions, chatPredictions, true)
		}
		return runChat(s, cmd.InOrStdin(), !chatNoPrompt)
	},
}

func runChat(s *session, in io.Reader, prompt bool) error {
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			s.ask(line)
			continue
		}
		if quit := chatCommand(s, line); quit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// chatCommand handles a ':' command line and reports whether to quit.
func chatCommand(s *session, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":exit", ":q":
		return true
	case ":help":
		fmt.Fprintln(s.out, chatHelp)
	case ":presets":
		for i, q := range query.Presets {
			fmt.Fprintf(s.out, "%d. %s\n", i+1, q)
		}
	case ":preset":
		if len(fields) != 2 {
			fmt.Fprintln(s.errOut, "usage: :preset <n>")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(s.errOut, "invalid preset number: %s\n", fields[1])
			return false
		}
		q, err := query.Preset(n)
		if err != nil {
			fmt.Fprintln(s.errOut, err)
			return false
		}
		s.ask(q)
	case ":load":
		if len(fields) < 3 {
			fmt.Fprintln(s.errOut, "usage: :load <hospital|predictions> <file>")
			return false
		}
		slot, err := dataset.ParseSlot(fields[1])
		if err != nil {
			fmt.Fprintln(s.errOut, err)
			return false
		}
		_, rest := nextToken(line)
		_, path := nextToken(rest)
		s.load(slot, path, true)
	default:
		fmt.Fprintf(s.errOut, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}

// nextToken splits s after its first whitespace-delimited token. rest keeps
// its inner spacing.
func nextToken(s string) (tok, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatWorkspace, "workspace", "w", "", "workspace whose sources to load")
	chatCmd.Flags().StringVar(&chatHospital, "hospital", "", "hospital occupancy CSV to load first")
	chatCmd.Flags().StringVar(&chatPredictions, "predictions", "", "predictions CSV to load first")
	chatCmd.Flags().BoolVar(&chatNoPrompt, "no-prompt", false, "do not print the '> ' prompt")
}
