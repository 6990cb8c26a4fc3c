package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aweris/plist"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Walk the construction scenario",
	Long:  "Build (3 2 1) by prepending onto an empty list, then take tails until past empty, printing every version.",
	Args:  cobra.NoArgs,
	RunE:  runScenario,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	return writeScenario(cmd.OutOrStdout())
}

func writeScenario(w io.Writer) error {
	l0 := plist.New[int](plist.WithLogger(log))
	one := l0.Prepend(1)
	two := one.Prepend(2)
	l1 := two.Prepend(3)
	one.Release()
	two.Release()

	l2 := l1.Tail()
	l3 := l2.Tail()
	l4 := l3.Tail()
	l5 := l4.Tail()

	versions := []*plist.List[int]{l0, l1, l2, l3, l4, l5}
	for i, l := range versions {
		head := "none"
		if v, ok := l.Head(); ok {
			head = fmt.Sprint(v)
		}
		if _, err := fmt.Fprintf(w, "L%d\t%s\thead=%s\n", i, l, head); err != nil {
			return err
		}
	}

	for _, l := range versions {
		l.Release()
	}

	if live := l0.Stats().Live; live != 0 {
		return fmt.Errorf("scenario: %d nodes still live after release", live)
	}
	return nil
}
