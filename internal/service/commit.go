package service

import (
	"context"
	"errors"

	apperrors "basstatic/internal/errors"
	"basstatic/internal/external"
)

// committer writes whole files with the read-revision then
// write-with-precondition pattern
type committer struct {
	contents ContentsAPI
}

// commit returns the commit sha of the new revision. A missing file is
// created without a precondition.
func (c *committer) commit(ctx context.Context, path string, content []byte, message string) (string, error) {
	var sha string
	info, err := c.contents.GetFile(ctx, path)
	switch {
	case err == nil:
		sha = info.SHA
	case errors.Is(err, external.ErrFileNotFound):
	default:
		return "", upstreamError(err)
	}

	resp, err := c.contents.PutFile(ctx, external.PutFileRequest{
		Path:    path,
		Content: content,
		Message: message,
		SHA:     sha,
	})
	if err != nil {
		return "", upstreamError(err)
	}
	return resp.CommitSHA, nil
}

func upstreamError(err error) error {
	var apiErr *external.APIError
	if errors.As(err, &apiErr) {
		return apperrors.Upstream(apiErr.Body, err)
	}
	return apperrors.Upstream(err.Error(), err)
}

// repositoryMedia commits media files next to the site sources
type repositoryMedia struct {
	committer
}

func (r *repositoryMedia) Put(ctx context.Context, path string, data []byte, _, message string) (string, error) {
	return r.commit(ctx, path, data, message)
}
