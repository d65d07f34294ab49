package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/engliz/internal/bank"
	"github.com/abhisek/engliz/internal/cli"
	"github.com/abhisek/engliz/internal/scorer"
	"github.com/abhisek/engliz/internal/selector"
	"github.com/abhisek/engliz/internal/session"
	"github.com/abhisek/engliz/internal/writing"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take an adaptive level test",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd)
	},
}

func init() {
	takeCmd.Flags().Uint64("seed", 0, "Fixed random seed for a reproducible session (0 = random)")
	takeCmd.Flags().String("start", "", "Starting CEFR band (default B1)")
}

func runTake(cmd *cobra.Command) error {
	catalog, err := bank.LoadFile(resolveBankPath(cmd))
	if err != nil {
		return fmt.Errorf("load item bank: %w", err)
	}

	opts := session.Options{WritingScorer: writing.NewHeuristic()}

	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		if cfg, err := loadHostConfig(); err == nil {
			seed = cfg.Seed
		}
	}
	if seed != 0 {
		opts.Rand = rand.NewPCG(seed, 0)
	}

	if start, _ := cmd.Flags().GetString("start"); start != "" {
		lvl := bank.Level(strings.ToUpper(start))
		if bank.LevelIndex(lvl) < 0 {
			return fmt.Errorf("unknown CEFR band %q", start)
		}
		cfg := session.DefaultConfig()
		cfg.StartLevel = lvl
		opts.Config = &cfg
	}

	eng := session.New(catalog, opts)
	st := eng.Start()
	in := bufio.NewScanner(os.Stdin)

	for !st.Finished {
		pres, err := eng.NextPresentation(st)
		if err != nil {
			return err
		}
		if pres.Passage != "" {
			fmt.Println(cli.Passage(pres))
		}
		for _, pi := range pres.Items {
			fmt.Println(cli.Header(st.Level(), st.Block.Presented+1, st.Block.Size))
			res, err := askItem(eng, st, in, pi)
			if err != nil {
				return err
			}
			fmt.Println()
			if res.BlockClosed || res.Finished {
				// The block this group was drawn for is gone; abandon
				// the remaining members.
				break
			}
		}
	}

	sum := session.Summarize(st)
	fmt.Println(cli.Summary(sum))
	fmt.Println(session.Feedback(sum.FinalLevel))
	return nil
}

// askItem prompts for one item until a complete response is submitted.
func askItem(eng *session.Engine, st *session.State, in *bufio.Scanner, pi selector.PresentedItem) (*session.SubmitResult, error) {
	for {
		fmt.Println(cli.Item(pi))
		resp, err := readResponse(in, pi)
		if err != nil {
			return nil, err
		}
		res, err := eng.Submit(st, pi.Item.Meta().ID, resp)
		if err != nil {
			return nil, err
		}
		if res.Incomplete != nil {
			fmt.Println(cli.Warn(res.Incomplete.Error()))
			continue
		}
		fmt.Println(cli.Result(res, pi.Item))
		return res, nil
	}
}

// readResponse collects the raw answer for one presented item.
func readResponse(in *bufio.Scanner, pi selector.PresentedItem) (scorer.Response, error) {
	switch it := pi.Item.(type) {
	case *bank.MultipleChoice:
		line, err := readLine(in, "> ")
		if err != nil {
			return scorer.Response{}, err
		}
		return scorer.Response{Option: optionFor(line, pi.Options)}, nil

	case *bank.ClozeChoices:
		fields, err := readFields(in, gapNumbers(it.Gaps), func(n int, line string) string {
			return optionFor(line, pi.GapOptions[n])
		})
		return scorer.Response{Fields: fields}, err

	case *bank.ClozeOpen:
		fields, err := readFields(in, gapNumbers(it.Gaps), nil)
		return scorer.Response{Fields: fields}, err

	case *bank.WordFormation:
		nums := make([]int, len(it.Entries))
		for i, e := range it.Entries {
			nums[i] = e.Number
		}
		fields, err := readFields(in, nums, nil)
		return scorer.Response{Fields: fields}, err

	case *bank.KeyTransformation:
		nums := make([]int, len(it.Entries))
		for i, e := range it.Entries {
			nums[i] = e.Number
		}
		fields, err := readFields(in, nums, nil)
		return scorer.Response{Fields: fields}, err

	case *bank.OpenWriting:
		var lines []string
		for {
			line, err := readLine(in, "")
			if err != nil {
				return scorer.Response{}, err
			}
			if strings.TrimSpace(line) == "." {
				break
			}
			lines = append(lines, line)
		}
		return scorer.Response{Text: strings.Join(lines, "\n")}, nil

	default:
		return scorer.Response{}, fmt.Errorf("unsupported item type %q", pi.Item.Type())
	}
}

// readFields prompts for each numbered element in order. transform, when
// non-nil, maps the raw line (e.g. an option index) to the answer text.
func readFields(in *bufio.Scanner, numbers []int, transform func(int, string) string) (map[int]string, error) {
	sort.Ints(numbers)
	fields := make(map[int]string, len(numbers))
	for _, n := range numbers {
		line, err := readLine(in, fmt.Sprintf("  %d> ", n))
		if err != nil {
			return nil, err
		}
		if transform != nil {
			line = transform(n, line)
		}
		fields[n] = line
	}
	return fields, nil
}

func readLine(in *bufio.Scanner, promptText string) (string, error) {
	if promptText != "" {
		fmt.Print(promptText)
	}
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return in.Text(), nil
}

// optionFor maps a 1-based option index to its text; any other input is
// taken as the option text itself.
func optionFor(line string, options []string) string {
	if idx, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1]
	}
	return strings.TrimSpace(line)
}

func gapNumbers(gaps []bank.Gap) []int {
	nums := make([]int, len(gaps))
	for i, g := range gaps {
		nums[i] = g.Number
	}
	return nums
}
