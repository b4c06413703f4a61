package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"task-tracker-bot/internal/metrics"
	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task"
	"task-tracker-bot/pkg/deadline"
)

// Start opens a dialogue for the user and asks for the title.
// With an open dialogue the configured Policy applies.
func (d *Dialogue) Start(ctx context.Context, sc model.Scope) (Reply, error) {
	defer d.lock(sc.UserID)()

	outcome := metrics.OutcomeStarted
	if open, ok := d.store.Get(sc.UserID); ok {
		if d.policy == PolicyReject {
			d.metrics.Dialogue(metrics.OutcomeRejected)
			d.l.Infof(ctx, "%s: user_id=%d already at stage %s", LogPrefixStart, sc.UserID, open.Stage)
			return Reply{
				Text:  MsgAlreadyAdding + "\n\n" + promptFor(open.Stage),
				Stage: open.Stage,
			}, nil
		}
		outcome = metrics.OutcomeRestarted
		d.l.Infof(ctx, "%s: user_id=%d restarts dialogue from stage %s", LogPrefixStart, sc.UserID, open.Stage)
	}

	d.store.Put(&Session{
		UserID:    sc.UserID,
		Stage:     StageTitle,
		StartedAt: d.now(),
	})
	d.metrics.Dialogue(outcome)

	return Reply{Text: PromptTitle, Stage: StageTitle}, nil
}

// Handle stores text as the answer to the current stage and advances.
// Invalid answers re-prompt without touching the fields collected so far.
func (d *Dialogue) Handle(ctx context.Context, sc model.Scope, text string) (Reply, bool, error) {
	defer d.lock(sc.UserID)()

	sess, ok := d.store.Get(sc.UserID)
	if !ok {
		return Reply{}, false, nil
	}

	text = strings.TrimSpace(text)

	var reply Reply
	var err error
	switch sess.Stage {
	case StageTitle:
		reply = d.handleTitle(sess, text)
	case StageDescription:
		reply = d.handleDescription(sess, text)
	case StageDeadline:
		reply, err = d.handleDeadline(ctx, sess, text)
	case StagePriority:
		reply, err = d.handlePriority(ctx, sc, sess, text)
	default:
		// A finished session is never stored; treat a stray one as closed.
		d.store.Delete(sc.UserID)
		return Reply{}, false, nil
	}
	if err != nil {
		return Reply{Stage: sess.Stage}, true, err
	}

	if reply.Stage != StageDone {
		d.store.Put(sess)
	}
	return reply, true, nil
}

// Cancel destroys the user's open dialogue.
func (d *Dialogue) Cancel(ctx context.Context, sc model.Scope) bool {
	defer d.lock(sc.UserID)()

	if !d.store.Delete(sc.UserID) {
		return false
	}
	d.metrics.Dialogue(metrics.OutcomeCancelled)
	return true
}

func (d *Dialogue) handleTitle(sess *Session, text string) Reply {
	if text == "" {
		return Reply{Text: MsgEmptyTitle, Stage: sess.Stage}
	}
	if utf8.RuneCountInString(text) > MaxTitleLength {
		return Reply{Text: MsgTitleTooLong, Stage: sess.Stage}
	}
	sess.Draft.Title = text
	return d.advance(sess)
}

func (d *Dialogue) handleDescription(sess *Session, text string) Reply {
	if utf8.RuneCountInString(text) > MaxDescriptionLength {
		return Reply{Text: MsgDescTooLong, Stage: sess.Stage}
	}
	sess.Draft.Description = text
	return d.advance(sess)
}

func (d *Dialogue) handleDeadline(ctx context.Context, sess *Session, text string) (Reply, error) {
	canonical, err := deadline.Format(text)
	if err != nil {
		var vErr *deadline.ValidationError
		if !errors.As(err, &vErr) {
			return Reply{}, err
		}
		d.metrics.DeadlineRejected()
		d.l.Debugf(ctx, "%s: user_id=%d rejected deadline %q", LogPrefixHandle, sess.UserID, text)
		return Reply{Text: MsgInvalidDeadline, Stage: sess.Stage}, nil
	}
	sess.Draft.Deadline = canonical
	return d.advance(sess), nil
}

func (d *Dialogue) handlePriority(ctx context.Context, sc model.Scope, sess *Session, text string) (Reply, error) {
	priority, err := strconv.Atoi(text)
	if err != nil || priority < MinPriority || priority > MaxPriority {
		return Reply{Text: MsgInvalidPriority, Stage: sess.Stage}, nil
	}
	sess.Draft.Priority = priority

	err = d.uc.Create(ctx, sc, task.CreateInput{
		Title:       sess.Draft.Title,
		Description: sess.Draft.Description,
		Deadline:    sess.Draft.Deadline,
		Priority:    sess.Draft.Priority,
	})
	if err != nil {
		d.l.Errorf(ctx, "%s: user_id=%d save failed: %v", LogPrefixHandle, sc.UserID, err)
		return Reply{}, fmt.Errorf("save task: %w", err)
	}

	d.store.Delete(sc.UserID)
	d.metrics.Dialogue(metrics.OutcomeCompleted)
	return Reply{
		Text:  fmt.Sprintf(MsgTaskSavedFormat, sess.Draft.Title),
		Stage: StageDone,
	}, nil
}

// advance moves sess to its next stage and returns that stage's prompt.
func (d *Dialogue) advance(sess *Session) Reply {
	sess.Stage = sess.Stage.Next()
	return Reply{Text: promptFor(sess.Stage), Stage: sess.Stage}
}

func promptFor(s Stage) string {
	switch s {
	case StageTitle:
		return PromptTitle
	case StageDescription:
		return PromptDescription
	case StageDeadline:
		return PromptDeadline
	case StagePriority:
		return PromptPriority
	}
	return ""
}
