// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/repraze/repraze-apps-sub001/internal/access"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/mock"
	"github.com/repraze/repraze-apps-sub001/internal/store"
	"github.com/repraze/repraze-apps-sub001/models"
)

// sequentialIDs hands out "id-1", "id-2", ...
type sequentialIDs struct {
	n atomic.Int64
}

func (g *sequentialIDs) Generate() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}

type testStorages struct {
	posts *mock.MockPostRepository
	pages *mock.MockPageRepository
	media *mock.MockMediaRepository
	users *mock.MockUserRepository
}

func newTestStorages(ctrl *gomock.Controller) (*store.Storages, testStorages) {
	m := testStorages{
		posts: mock.NewMockPostRepository(ctrl),
		pages: mock.NewMockPageRepository(ctrl),
		media: mock.NewMockMediaRepository(ctrl),
		users: mock.NewMockUserRepository(ctrl),
	}
	return &store.Storages{
		PostRepository:  m.posts,
		PageRepository:  m.pages,
		MediaRepository: m.media,
		UserRepository:  m.users,
	}, m
}

var (
	fixedNow   = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	testClaim  = models.Claim{SubjectID: "u1", SubjectName: "John"}
	anonymous  = context.Background()
	signedIn   = access.WithCaller(context.Background(), access.Authenticated(testClaim))
	testLogger = logger.Nop()
)

func ptr[T any](v T) *T { return &v }

func testMeta() *models.Meta {
	return &models.Meta{
		CreationUser: models.Reference[models.UserSummary]("u1"),
		LastEditUser: models.Reference[models.UserSummary]("u2"),
		Comment:      "draft",
	}
}

func newTestPostService(t *testing.T) (*postService, testStorages) {
	t.Helper()
	ctrl := gomock.NewController(t)
	storages, mocks := newTestStorages(ctrl)

	svc := NewPostService(storages, &sequentialIDs{}, testLogger).(*postService)
	svc.now = func() time.Time { return fixedNow }
	return svc, mocks
}
