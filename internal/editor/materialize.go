package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dimitrije/collaborate-api/internal/database"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/google/uuid"
)

var ErrInvalidFormat = errors.New("invalid text format")

// Draft is a user's temporary upload area.
type Draft struct {
	UserID uuid.UUID
	ItemID int64
}

// FileStore moves files between draft areas and owned areas. Every call runs
// on the querier it is given so it joins the caller's transaction.
type FileStore interface {
	NewDraftItemID(ctx context.Context, q database.Querier) (int64, error)
	SaveDraftArea(ctx context.Context, q database.Querier, draft Draft, area Area, opts Options) (int64, error)
	CopyAreaToDraft(ctx context.Context, q database.Querier, area Area, draft Draft) (int64, error)
}

// Materializer turns submitted editor content into stored content and back.
type Materializer struct {
	files   FileStore
	baseURL string
}

// NewMaterializer builds a materializer. baseURL is the public prefix of the
// draftfile and pluginfile routes.
func NewMaterializer(files FileStore, baseURL string) *Materializer {
	return &Materializer{files: files, baseURL: strings.TrimRight(baseURL, "/")}
}

func (m *Materializer) DraftURLPrefix(itemID int64) string {
	return m.baseURL + "/draftfile/" + strconv.FormatInt(itemID, 10) + "/"
}

// PostUpdate stores the files of in's draft area under area and rewrites the
// draft links embedded in the text to PluginfileToken. The record owning area
// must already exist: its id is area.ItemID.
func (m *Materializer) PostUpdate(ctx context.Context, q database.Querier, userID uuid.UUID, in Content, opts Options, area Area) (Stored, error) {
	format := in.Format
	if !opts.ChangeFormatAllowed {
		format = models.FormatHTML
	}
	if !format.Valid() {
		return Stored{}, fmt.Errorf("%w: %d", ErrInvalidFormat, format)
	}

	text := in.Text
	if !opts.SkipHTMLCleaning && (format == models.FormatHTML || format == models.FormatMoodle) {
		cleaned, err := Clean(text)
		if err != nil {
			return Stored{}, fmt.Errorf("failed to clean text: %w", err)
		}
		text = cleaned
	}

	if in.ItemID != 0 && opts.MaxFiles != 0 {
		if _, err := m.files.SaveDraftArea(ctx, q, Draft{UserID: userID, ItemID: in.ItemID}, area, opts); err != nil {
			return Stored{}, fmt.Errorf("failed to save draft area %d: %w", in.ItemID, err)
		}
		text = strings.ReplaceAll(text, m.DraftURLPrefix(in.ItemID), PluginfileToken+"/")
	}

	return Stored{Text: text, Format: format}, nil
}

// Prepare copies the files of area into a new draft area and points the
// stored text at it, ready to be edited.
func (m *Materializer) Prepare(ctx context.Context, q database.Querier, userID uuid.UUID, stored Stored, opts Options, area Area) (Content, error) {
	itemID, err := m.files.NewDraftItemID(ctx, q)
	if err != nil {
		return Content{}, fmt.Errorf("failed to allocate draft item: %w", err)
	}

	if opts.MaxFiles != 0 && area.ItemID != 0 {
		if _, err := m.files.CopyAreaToDraft(ctx, q, area, Draft{UserID: userID, ItemID: itemID}); err != nil {
			return Content{}, fmt.Errorf("failed to copy area %s: %w", area, err)
		}
	}

	return Content{
		Text:   strings.ReplaceAll(stored.Text, PluginfileToken+"/", m.DraftURLPrefix(itemID)),
		Format: stored.Format,
		ItemID: itemID,
	}, nil
}

// RewritePluginfileURLs points PluginfileToken links in text at the public
// file route of area.
func (m *Materializer) RewritePluginfileURLs(text string, area Area) string {
	prefix := fmt.Sprintf("%s/pluginfile/%d/%s/%s/%d/", m.baseURL, area.ContextID, area.Component, area.FileArea, area.ItemID)
	return strings.ReplaceAll(text, PluginfileToken+"/", prefix)
}
