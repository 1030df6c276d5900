package problemio

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
)

// WriteSearchLog writes the teacher's plain-text, deterministic-formatting
// report of a completed search (§6): a run identifier, a header line, one
// resolved action name per line in application order, and a trailing
// totals line. No templating engine is used — a loop of fmt.Fprintf
// calls, matching every other teacher package's diagnostic output. runID
// identifies this invocation in the log the way the pack's agent/session
// code tags a message or session with uuid.New().String(); pass "" to
// omit it (tests comparing exact output don't need a fresh run tag).
func WriteSearchLog(path string, idx *problem.Index, plan []fstrips.ActionInstance, elapsed time.Duration, nodesGenerated, nodesExpanded int, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("problemio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeRunHeader(w, runID)
	fmt.Fprintf(w, "; plan found, %d step(s)\n", len(plan))
	for i, ai := range plan {
		fmt.Fprintf(w, "%d: %s\n", i, ai.Name(idx))
	}
	fmt.Fprintf(w, "; time=%s nodes_generated=%d nodes_expanded=%d\n", elapsed, nodesGenerated, nodesExpanded)

	return w.Flush()
}

// WriteUnsolvedLog writes the searchlog.out variant for an unsuccessful
// search (§7 "Resource exhaustion", §8 "Unsolvable task"/"Timeout"): no
// plan section, just the cause (search.ErrNoPlan or a cancelled/expired
// context) and the partial statistics gathered before the harness gave
// up, matching §8's required "no plan" / elapsed-time-and-nodes-so-far
// wording.
func WriteUnsolvedLog(path string, cause error, elapsed time.Duration, nodesGenerated, nodesExpanded int, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("problemio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeRunHeader(w, runID)
	fmt.Fprintf(w, "; no plan: %s\n", cause)
	fmt.Fprintf(w, "; time=%s nodes_generated=%d nodes_expanded=%d\n", elapsed, nodesGenerated, nodesExpanded)

	return w.Flush()
}

func writeRunHeader(w *bufio.Writer, runID string) {
	if runID != "" {
		fmt.Fprintf(w, "; run=%s\n", runID)
	}
}

// WritePlanIPC writes plan in the plan.ipc round-trip format (§8): one
// action per line, the lowercased schema name followed by a
// parenthesized, space-separated tuple of object names, e.g.
// "(move b1 b2)".
func WritePlanIPC(path string, idx *problem.Index, plan []fstrips.ActionInstance) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("problemio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, ai := range plan {
		line, err := formatIPCLine(idx, ai)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

func formatIPCLine(idx *problem.Index, ai fstrips.ActionInstance) (string, error) {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(strings.ToLower(ai.Action.Name))
	for _, slot := range ai.Action.ParamSlots {
		v, ok := ai.Binding.Get(slot)
		if !ok {
			return "", fmt.Errorf("problemio: action %q has an unbound parameter, cannot format as plan.ipc", ai.Action.Name)
		}
		sb.WriteByte(' ')
		sb.WriteString(idx.Object(problem.ObjectIdx(v)).Name)
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

// ParsePlanIPC reads a plan.ipc file and resolves each line to a fully
// ground fstrips.ActionInstance against the given actions (matched
// case-insensitively by name) and the problem's object catalogue.
func ParsePlanIPC(path string, idx *problem.Index, actions []*fstrips.Action) ([]fstrips.ActionInstance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("problemio: opening %s: %w", path, err)
	}
	defer f.Close()

	byName := make(map[string]*fstrips.Action, len(actions))
	for _, a := range actions {
		byName[strings.ToLower(a.Name)] = a
	}
	byObjName := make(map[string]problem.ObjectIdx, idx.NumObjects())
	for o := 0; o < idx.NumObjects(); o++ {
		byObjName[idx.Object(problem.ObjectIdx(o)).Name] = problem.ObjectIdx(o)
	}

	var plan []fstrips.ActionInstance
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ai, err := parseIPCLine(line, byName, byObjName)
		if err != nil {
			return nil, fmt.Errorf("problemio: parsing %s: %w", path, err)
		}
		plan = append(plan, ai)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("problemio: reading %s: %w", path, err)
	}
	return plan, nil
}

func parseIPCLine(line string, byName map[string]*fstrips.Action, byObjName map[string]problem.ObjectIdx) (fstrips.ActionInstance, error) {
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return fstrips.ActionInstance{}, fmt.Errorf("malformed plan line %q: expected (name arg...)", line)
	}
	fields := strings.Fields(line[1 : len(line)-1])
	if len(fields) == 0 {
		return fstrips.ActionInstance{}, fmt.Errorf("empty plan line")
	}
	action, ok := byName[strings.ToLower(fields[0])]
	if !ok {
		return fstrips.ActionInstance{}, fmt.Errorf("unknown action %q", fields[0])
	}
	args := fields[1:]
	if len(args) != len(action.ParamSlots) {
		return fstrips.ActionInstance{}, fmt.Errorf("action %q expects %d argument(s), got %d", fields[0], len(action.ParamSlots), len(args))
	}
	b := fstrips.NewBinding(nil)
	for i, name := range args {
		o, ok := byObjName[name]
		if !ok {
			return fstrips.ActionInstance{}, fmt.Errorf("action %q arg %d: unknown object %q", fields[0], i, name)
		}
		b = b.With(action.ParamSlots[i], problem.Value(o))
	}
	return fstrips.ActionInstance{Action: action, Binding: b}, nil
}
