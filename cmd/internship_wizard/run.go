package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/internship-wizard/internal/backend"
	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/observability"
	"github.com/jonathan/internship-wizard/internal/results"
	"github.com/jonathan/internship-wizard/internal/session"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
	"github.com/jonathan/internship-wizard/internal/wizard"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Walk through the questionnaire interactively",
	Long: `Starts the six-step questionnaire on standard input. Each line is a command;
type "help" for the list. Sector cards and skill suggestions are loaded from the
matching service at start-up, and the profile is submitted with "submit" on the
last step.`,
	RunE: runWizardCmd,
}

var (
	runLoadProfile bool
	runLimit       int
)

func init() {
	runCommand.Flags().BoolVar(&runLoadProfile, "load-profile", false, "Start from the stored profile")
	runCommand.Flags().IntVar(&runLimit, "show", 10, "Number of recommendations to print")

	rootCmd.AddCommand(runCommand)
}

func runWizardCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	sess, cfg, closeProfiles, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeProfiles()

	r := newREPL(sess, cmd.OutOrStdout(), cfg.Timeout())
	r.limit = runLimit

	bootCtx, cancel := r.withDeadline(ctx)
	err = sess.Bootstrap(bootCtx)
	cancel()
	if err != nil {
		r.errorf("could not load catalog: %v", err)
	}
	if runLoadProfile {
		r.execute(ctx, "load")
	}
	return r.loop(ctx, cmd.InOrStdin())
}

// repl drives a Session from line commands.
type repl struct {
	sess    *session.Session
	out     io.Writer
	printer *observability.Printer
	timeout time.Duration
	limit   int
}

func newREPL(sess *session.Session, out io.Writer, timeout time.Duration) *repl {
	return &repl{
		sess:    sess,
		out:     out,
		printer: observability.NewPrinter(out),
		timeout: timeout,
		limit:   10,
	}
}

// withDeadline bounds one command's collaborator calls by the configured timeout.
func (r *repl) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *repl) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *repl) errorf(format string, args ...any) {
	r.printf("! "+format+"\n", args...)
}

func (r *repl) loop(ctx context.Context, in io.Reader) error {
	r.printer.PrintStep(r.sess.View())
	r.prompt()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if quit := r.execute(ctx, scanner.Text()); quit {
			return nil
		}
		r.prompt()
	}
	return scanner.Err()
}

func (r *repl) prompt() {
	switch r.sess.View().Step {
	case validation.StepMethod:
		r.printf("method manual | method resume\n")
	case validation.StepProfile:
		if r.sess.View().Method == wizard.MethodResume && r.sess.UploadState() != ingestion.StateEditing {
			r.printf("upload <path> | accept | reject | education <level> | experience <level>\n")
		} else {
			r.printf("education <level> | experience <level>\n")
		}
	case validation.StepSkills:
		r.printf("suggested: %s\n", strings.Join(r.sess.Suggestions(), ", "))
		r.printf("pick <suggested> | skill <name> | unskill <name>\n")
	case validation.StepSectors:
		var ids []string
		for _, s := range r.sess.Sectors() {
			ids = append(ids, string(s.ID))
		}
		r.printf("sectors: %s\n", strings.Join(ids, ", "))
		r.printf("sector <id>\n")
	case validation.StepGoal:
		r.printf("goal <career goal> | learn <skill> | learn all | save-goal | recommend\n")
	case validation.StepLocation:
		r.printf("location <place> | remote yes|no | submit\n")
	}
	r.printf("> ")
}

// execute runs one command line and reports whether the user asked to quit.
// Errors are printed, never returned: every failure leaves the session in a
// state the user can continue from.
func (r *repl) execute(ctx context.Context, line string) bool {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	var err error
	redraw := true
	switch strings.ToLower(verb) {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		r.printf("%s\n", helpText)
		return false
	case "next":
		err = r.sess.Advance()
	case "back":
		err = r.sess.Retreat()
	case "method":
		var m wizard.InputMethod
		if m, err = wizard.ParseInputMethod(arg); err == nil {
			err = r.sess.ChooseMethod(m)
		}
	case "upload":
		err = r.upload(ctx, arg)
		redraw = err == nil
	case "accept":
		err = r.sess.AcceptExtraction()
	case "reject":
		err = r.sess.RejectExtraction()
	case "education":
		err = r.sess.SetEducation(arg)
	case "experience":
		err = r.sess.SetExperience(arg)
	case "skill":
		_, err = r.sess.AddSkill(arg)
	case "unskill":
		_, err = r.sess.RemoveSkill(arg)
	case "pick":
		_, err = r.sess.ToggleSkill(arg)
	case "sector":
		_, err = r.sess.ToggleSector(types.SectorID(arg))
	case "goal":
		err = r.goal(ctx, arg)
	case "learn":
		err = r.learn(ctx, arg)
	case "save-goal":
		err = r.sess.SaveGoal(ctx, "")
		if err == nil {
			r.printf("goal saved\n")
		}
	case "recommend":
		err = r.recommend(ctx)
		redraw = false
	case "location":
		err = r.sess.SetLocation(arg)
	case "remote":
		err = r.sess.SetRemoteWork(isYes(arg))
	case "show":
		r.printer.PrintProfile(r.sess.Form())
		if gap := r.sess.Gap(); gap != nil {
			r.printer.PrintGap(*gap)
		}
	case "load":
		var found bool
		if found, err = r.sess.LoadProfile(ctx); err == nil {
			if found {
				r.printf("profile loaded\n")
			} else {
				r.printf("no stored profile\n")
			}
		}
	case "save":
		if err = r.sess.SaveProfile(ctx); err == nil {
			r.printf("profile saved\n")
		}
	case "submit":
		err = r.submit(ctx)
		redraw = false
	default:
		err = fmt.Errorf("unknown command %q (type help)", verb)
		redraw = false
	}

	if err != nil {
		r.errorf("%s", describe(err))
		return false
	}
	if redraw {
		r.printer.PrintStep(r.sess.View())
	}
	return false
}

func (r *repl) upload(ctx context.Context, path string) error {
	if path == "" {
		return &validation.InputError{Field: "resume", Message: "path is required"}
	}
	u, err := ingestion.LoadUpload(path)
	if err != nil {
		return err
	}
	r.printf("extracting %s ...\n", u.Filename)
	preview, err := r.sess.UploadResume(ctx, u)
	if err != nil {
		if r.sess.UploadState() == ingestion.StateFailed {
			r.printf("continuing with manual entry\n")
			r.printer.PrintStep(r.sess.View())
		}
		return err
	}
	r.printer.PrintExtraction(preview)
	r.printf("accept to use these details, reject to enter them yourself\n")
	return nil
}

func (r *repl) goal(ctx context.Context, goal string) error {
	if err := r.sess.SetGoal(ctx, goal, ""); err != nil {
		return err
	}
	if req := r.sess.Goal(); req != nil {
		r.printer.PrintGoal(req)
	}
	if gap := r.sess.Gap(); gap != nil {
		r.printer.PrintGap(*gap)
	}
	return nil
}

func (r *repl) learn(ctx context.Context, arg string) error {
	if strings.EqualFold(arg, "all") {
		n, err := r.sess.AddAllMissing(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			r.printf("you already have every required skill\n")
		} else {
			r.printf("added %d skills\n", n)
		}
	} else {
		added, err := r.sess.AddGoalSkill(ctx, arg)
		if err != nil {
			return err
		}
		if !added {
			r.printf("%s is already in your profile\n", arg)
		}
	}
	if gap := r.sess.Gap(); gap != nil {
		r.printer.PrintGap(*gap)
	}
	return nil
}

func (r *repl) submit(ctx context.Context) error {
	r.printf("finding internships ...\n")
	if _, err := r.sess.Submit(ctx); err != nil {
		return err
	}
	ranked, summary := r.sess.Results()
	r.printer.PrintSummary(summary)
	r.printer.PrintRecommendations(ranked, r.limit)
	return nil
}

func (r *repl) recommend(ctx context.Context) error {
	r.printf("finding internships for your goal ...\n")
	records, err := r.sess.RecommendForGoal(ctx)
	if err != nil {
		return err
	}
	r.printer.PrintSummary(results.Summarize(records))
	r.printer.PrintRecommendations(results.Rank(records), r.limit)
	return nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "on":
		return true
	}
	return false
}

// describe turns an error into the message shown to the user.
func describe(err error) string {
	var inputErr *validation.InputError
	var serviceErr *backend.ServiceError
	var httpErr *backend.Error
	var unavailable *session.UnavailableError
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Error()
	case errors.Is(err, wizard.ErrStepInvalid):
		return err.Error()
	case errors.Is(err, session.ErrNoGoal):
		return "set a career goal first (goal <text>)"
	case errors.Is(err, session.ErrSubmitPending):
		return "a submission is already running"
	case errors.Is(err, wizard.ErrSubmitted):
		return "already submitted"
	case errors.As(err, &serviceErr):
		return "the service reported: " + serviceErr.Message
	case errors.As(err, &httpErr):
		return "could not reach the service, please try again (" + httpErr.Message + ")"
	case errors.As(err, &unavailable):
		return unavailable.Error()
	default:
		return err.Error()
	}
}

const helpText = `Commands:
  next, back                 move between steps
  method manual|resume       choose how to start (step 1)
  upload <path>              extract details from a resume (resume method)
  accept, reject             confirm or discard the extracted details
  education <level>          set education level
  experience <level>         set experience level
  skill <name>               add a skill
  unskill <name>             remove a skill
  pick <name>                select or deselect a suggested skill
  sector <id>                toggle a sector of interest
  goal <text>                set a career goal and show the skill gap
  learn <skill>|all          add required skills for the goal
  save-goal                  store the goal with its requirements
  recommend                  find internships for the career goal
  location <place>           set preferred location
  remote yes|no              set remote work preference
  show                       print the profile
  load, save                 read or store the profile
  submit                     get recommendations (last step)
  quit                       leave`
