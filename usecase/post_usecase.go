package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linkedpost/domain/model"
	"linkedpost/domain/repository"
	"linkedpost/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidURL rejects input that is not a recognizable YouTube video link.
	ErrInvalidURL = errors.New(model.SentinelInvalidURL)
	// ErrNotLoggedIn blocks publishing without a complete LinkedIn identity.
	ErrNotLoggedIn = errors.New("not logged in to LinkedIn")
	// ErrNoPost means there is nothing in the session to publish.
	ErrNoPost = errors.New("no generated post available to publish")
)

// GenerateOutcome is the orchestrator result. ManualInputRequired is a
// distinct outcome from failure: video metadata could not be fetched and the
// caller must collect title+summary before using the template path.
// TranscriptNotice carries the user-facing message when the transcript was
// unavailable; generation proceeds regardless.
type GenerateOutcome struct {
	Post                *model.GeneratedPost
	ManualInputRequired bool
	TranscriptNotice    string
}

// IPostUsecase orchestrates the URL-to-post pipeline and publishing.
type IPostUsecase interface {
	GenerateFromURL(ctx context.Context, sess *model.Session, rawURL string) (*GenerateOutcome, error)
	GenerateManual(sess *model.Session, title, summary string) *model.GeneratedPost
	Publish(ctx context.Context, sess *model.Session, text string) error
}

// PostUsecase wires the fetchers, the generator and the publish client.
type PostUsecase struct {
	metadata   repository.IVideoMetadata
	transcript repository.ITranscript
	generator  repository.IPostGenerator
	linkedIn   repository.ILinkedIn
}

func NewPostUsecase(
	metadata repository.IVideoMetadata,
	transcript repository.ITranscript,
	generator repository.IPostGenerator,
	linkedIn repository.ILinkedIn,
) IPostUsecase {
	return &PostUsecase{
		metadata:   metadata,
		transcript: transcript,
		generator:  generator,
		linkedIn:   linkedIn,
	}
}

// GenerateFromURL runs the full pipeline: validate, fetch metadata and
// transcript (concurrently, each failure tolerated), then generate. The
// outcome is stored on the session so the user can publish or retry.
func (u *PostUsecase) GenerateFromURL(ctx context.Context, sess *model.Session, rawURL string) (*GenerateOutcome, error) {
	ref, ok := model.ParseVideoReference(rawURL)
	if !ok {
		return nil, ErrInvalidURL
	}

	content, notice := u.fetchContent(ctx, ref.VideoID)

	if !content.HasMetadata() {
		logger.GetLogger().WithField("videoId", ref.VideoID).Warn("Could not fetch video title and description; manual input required")
		return &GenerateOutcome{ManualInputRequired: true, TranscriptNotice: notice}, nil
	}

	text, err := u.generator.GeneratePost(ctx, content.Title, content.Description, content.Transcript)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", model.SentinelGenerationFailed, err)
	}
	if model.IsFailureSentinel(text) {
		return nil, errors.New(text)
	}

	post := &model.GeneratedPost{Text: text, Source: model.PostSourceGenerated}
	sess.Post = post
	return &GenerateOutcome{Post: post, TranscriptNotice: notice}, nil
}

// fetchContent collects metadata and transcript for a video. The two calls
// are independent; both run concurrently and either may fail without
// stopping the pipeline.
func (u *PostUsecase) fetchContent(ctx context.Context, videoID string) (model.VideoContent, string) {
	var content model.VideoContent
	var notice string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		title, description, err := u.metadata.FetchVideoDetails(gctx, videoID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Metadata fetch failed; continuing without title/description")
			return nil
		}
		content.Title = title
		content.Description = description
		return nil
	})
	g.Go(func() error {
		text, err := u.transcript.FetchTranscript(gctx, videoID)
		if err != nil {
			notice = transcriptNotice(err)
			logger.GetLogger().WithField("error", err).Warn("Transcript fetch failed; continuing without transcript")
			return nil
		}
		content.Transcript = text
		return nil
	})
	_ = g.Wait()

	return content, notice
}

// transcriptNotice maps the transcript failure taxonomy to its user-facing
// message. Control flow is identical in all three cases.
func transcriptNotice(err error) string {
	switch {
	case errors.Is(err, repository.ErrTranscriptsDisabled):
		return "Transcripts are disabled for this YouTube video."
	case errors.Is(err, repository.ErrNoTranscript):
		return "No transcript found for this YouTube video (or not in English)."
	default:
		return "Error fetching YouTube transcript."
	}
}

// GenerateManual builds the fixed-template post from user-provided title and
// summary. No model call is involved.
func (u *PostUsecase) GenerateManual(sess *model.Session, title, summary string) *model.GeneratedPost {
	post := &model.GeneratedPost{
		Text:   BuildTemplatePost(title, summary),
		Source: model.PostSourceManual,
	}
	sess.Post = post
	return post
}

// BuildTemplatePost is the pure fallback template: opening line, title,
// summary, static call-to-action and static hashtags.
func BuildTemplatePost(title, summary string) string {
	if title == "" {
		title = "Insightful Learnings!"
	}
	if summary == "" {
		summary = "Key takeaways and reflections on a relevant topic."
	}

	hashtags := []string{"#knowledge", "#insights", "#learning", "#linkedin", "#professionaldevelopment"}

	var b strings.Builder
	b.WriteString("\U0001F4E2 **Sharing some valuable insights I recently gained!** \U0001F4E2\n\n")
	fmt.Fprintf(&b, "\U0001F3AC **%s** \U0001F3AC\n\n", title)
	fmt.Fprintf(&b, "%s\n\n", summary)
	b.WriteString("➡️ Let's discuss in the comments below! Share your thoughts and experiences! \U0001F447\n\n")
	b.WriteString("#️⃣ " + strings.Join(hashtags, " ") + "\n\n")
	b.WriteString("---\n#LinkedIn #KnowledgeSharing #ProfessionalGrowth #Insights")
	return b.String()
}

// Publish sends text to LinkedIn as the logged-in member. With empty text the
// session's held post is published. A failure leaves both the session and the
// post intact so the user can retry without regenerating.
func (u *PostUsecase) Publish(ctx context.Context, sess *model.Session, text string) error {
	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	if text == "" {
		if sess.Post == nil {
			return ErrNoPost
		}
		text = sess.Post.Text
	}
	if err := u.linkedIn.Publish(ctx, sess.AccessToken, sess.UserURN, text); err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}
	return nil
}
