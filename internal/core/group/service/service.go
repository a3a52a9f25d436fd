package groupapp

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	groupEntity "inkwell/internal/core/group"
	groupPort "inkwell/internal/ports/group"

	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

// CreateGroup is used by the admin CLI; groups are never created over HTTP.
func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)

	verr := &apperror.ValidationError{}
	if title == "" {
		verr.Add("title", "This field is required.")
	}
	if !slugPattern.MatchString(slug) {
		verr.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("create group %q: %w", slug, err)
	}

	config.Logger.Info("Group created", zap.String("slug", g.Slug))
	return groupPort.ToGroupDTO(g), nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.ToGroupDTO(g))
	}
	return dtos, nil
}
