package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/eventpilot/internal/repository"
	"github.com/alexanderramin/eventpilot/internal/session"
)

// DefaultListLimit is how many projects the menu lists.
const DefaultListLimit = 10

// Conversation routes chat messages to use cases according to the session
// state of each conversation.
type Conversation struct {
	sessions  *session.Store
	projects  ProjectService
	edits     EditService
	stats     StatsService
	listLimit int
	observer  UseCaseObserver
}

func NewConversation(
	sessions *session.Store,
	projects ProjectService,
	edits EditService,
	stats StatsService,
	listLimit int,
	observers ...UseCaseObserver,
) *Conversation {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &Conversation{
		sessions:  sessions,
		projects:  projects,
		edits:     edits,
		stats:     stats,
		listLimit: listLimit,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Start greets the user and clears the conversation.
func (c *Conversation) Start(ctx context.Context, conversationID, userName string) Reply {
	c.sessions.Get(conversationID).Reset()
	text := textGreeting
	if userName != "" {
		text = "Привет, " + userName + "!\n" + text
	}
	return Reply{Text: text, Buttons: mainMenuButtons()}
}

// Handle processes one incoming message.
func (c *Conversation) Handle(ctx context.Context, conversationID, text string) Reply {
	text = strings.TrimSpace(text)
	sess := c.sessions.Get(conversationID)
	done := track(ctx, c.observer, "handle-message", map[string]any{
		"conversation_id": conversationID,
		"state":           string(sess.State),
	})
	defer done(nil)

	if text == ButtonBack {
		return c.Start(ctx, conversationID, "")
	}

	switch sess.State {
	case session.StateNewEvent:
		return c.createProject(ctx, sess, text)
	case session.StateProjectSelect:
		return c.selectProject(ctx, sess, text)
	case session.StateProjectEdit:
		if text == ButtonYes || text == ButtonCancel {
			return Reply{Text: textFormulateFirst}
		}
		return c.applyEdit(ctx, sess, text)
	case session.StateProjectConfirm:
		return c.confirm(ctx, sess, text)
	}

	switch text {
	case ButtonNewEvent:
		sess.State = session.StateNewEvent
		return Reply{Text: textDescribeEvent, Buttons: mainMenuButtons()}
	case ButtonProjects:
		return c.listProjects(ctx, sess)
	case ButtonStats:
		return c.showStats(ctx)
	case ButtonSettings:
		return Reply{Text: textSettings, Buttons: mainMenuButtons()}
	}
	return Reply{Text: textUnknownRequest}
}

func (c *Conversation) createProject(ctx context.Context, sess *session.Context, text string) Reply {
	p, err := c.projects.CreateFromText(ctx, text)
	if errors.Is(err, ErrEmptyDescription) {
		return Reply{Text: textEmptyDescription, Buttons: mainMenuButtons()}
	}
	if err != nil {
		return Reply{Text: textSaveFailed, Buttons: mainMenuButtons()}
	}
	sess.Reset()
	return Reply{Text: CreationSummary(p), Buttons: mainMenuButtons()}
}

func (c *Conversation) listProjects(ctx context.Context, sess *session.Context) Reply {
	summaries, err := c.projects.ListRecent(ctx, c.listLimit)
	if err != nil || len(summaries) == 0 {
		return Reply{Text: textNoProjects, Buttons: mainMenuButtons()}
	}

	sess.ProjectMap = make(map[string]string, len(summaries))
	var labels []string
	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		label := ProjectLabel(s)
		lines = append(lines, "• "+label)
		// On a label collision the newest project wins.
		if _, dup := sess.ProjectMap[label]; dup {
			continue
		}
		sess.ProjectMap[label] = s.EventID
		labels = append(labels, label)
	}
	sess.State = session.StateProjectSelect
	return Reply{
		Text:    "Последние проекты:\n" + strings.Join(lines, "\n") + "\n\nВыберите проект из клавиатуры.",
		Buttons: projectButtons(labels),
	}
}

func (c *Conversation) selectProject(ctx context.Context, sess *session.Context, text string) Reply {
	id, ok := sess.ProjectMap[text]
	if !ok {
		return Reply{Text: textUnknownProject, Buttons: projectButtons(sortedLabels(sess.ProjectMap))}
	}
	p, err := c.projects.Get(ctx, id)
	if err != nil {
		return Reply{Text: textProjectBroken}
	}
	sess.State = session.StateProjectEdit
	sess.CurrentProjectID = id
	return Reply{Text: ProjectCard(p) + "\n\n" + textEditHint, Buttons: confirmationButtons()}
}

func (c *Conversation) applyEdit(ctx context.Context, sess *session.Context, text string) Reply {
	if sess.CurrentProjectID == "" {
		sess.Reset()
		return Reply{Text: textPickFirst, Buttons: mainMenuButtons()}
	}
	out, err := c.edits.Apply(ctx, sess.CurrentProjectID, text)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return Reply{Text: textLoadFailed}
	}
	if err != nil {
		return Reply{Text: textSaveFailed, Buttons: confirmationButtons()}
	}

	res := out.Result
	switch {
	case res.RequiresConfirmation:
		sess.StagePending(res.Pending)
		return Reply{Text: res.Reply, Buttons: confirmationButtons()}
	case res.Updated:
		return Reply{Text: UpdatedText(res.Summary), Buttons: confirmationButtons()}
	default:
		return Reply{Text: res.Reply, Buttons: confirmationButtons()}
	}
}

func (c *Conversation) confirm(ctx context.Context, sess *session.Context, text string) Reply {
	if sess.CurrentProjectID == "" || sess.Pending == nil {
		sess.ClearPending()
		sess.State = session.StateProjectEdit
		return Reply{Text: textNothingToConfirm, Buttons: mainMenuButtons()}
	}

	switch text {
	case ButtonYes:
		summary, err := c.edits.Confirm(ctx, sess.CurrentProjectID, sess.Pending)
		if errors.Is(err, repository.ErrProjectNotFound) {
			return Reply{Text: textLoadFailed}
		}
		if err != nil {
			// A change that cannot be applied is dropped rather than retried.
			sess.ClearPending()
			return Reply{Text: textSaveFailed, Buttons: confirmationButtons()}
		}
		sess.ClearPending()
		return Reply{Text: UpdatedText(summary), Buttons: confirmationButtons()}
	case ButtonCancel:
		c.edits.Cancel(ctx, sess.CurrentProjectID, sess.ClearPending())
		return Reply{Text: TextCancelled, Buttons: confirmationButtons()}
	}
	return Reply{Text: textAnswerYesNo, Buttons: confirmationButtons()}
}

func (c *Conversation) showStats(ctx context.Context) Reply {
	st, err := c.stats.Stats(ctx)
	if err != nil {
		st = &Stats{}
	}
	return Reply{Text: StatsText(st), Buttons: mainMenuButtons()}
}
