package enrich

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/outreach-cli/pkg/hubspot"
)

type mockCRM struct {
	mock.Mock
}

func (m *mockCRM) GetList(ctx context.Context, listID string) (*hubspot.List, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.List), args.Error(1)
}

func (m *mockCRM) ListMemberships(ctx context.Context, listID, after string, limit int) (*hubspot.MembershipPage, error) {
	args := m.Called(ctx, listID, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.MembershipPage), args.Error(1)
}

func (m *mockCRM) ListContactsLegacy(ctx context.Context, listID string, properties []string) ([]hubspot.Object, error) {
	args := m.Called(ctx, listID, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hubspot.Object), args.Error(1)
}

func (m *mockCRM) GetContact(ctx context.Context, contactID string, properties []string) (*hubspot.Object, error) {
	args := m.Called(ctx, contactID, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.Object), args.Error(1)
}

func (m *mockCRM) BatchReadContacts(ctx context.Context, contactIDs []string, properties []string) ([]hubspot.Object, error) {
	args := m.Called(ctx, contactIDs, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hubspot.Object), args.Error(1)
}

func (m *mockCRM) GetCompany(ctx context.Context, companyID string, properties []string) (*hubspot.Object, error) {
	args := m.Called(ctx, companyID, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.Object), args.Error(1)
}

func (m *mockCRM) GetDeal(ctx context.Context, dealID string, properties []string) (*hubspot.Object, error) {
	args := m.Called(ctx, dealID, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.Object), args.Error(1)
}

func (m *mockCRM) ListAssociations(ctx context.Context, fromType, objectID, toType string) ([]string, error) {
	args := m.Called(ctx, fromType, objectID, toType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockCRM) GetDealPipelines(ctx context.Context) ([]hubspot.Pipeline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hubspot.Pipeline), args.Error(1)
}

func (m *mockCRM) ListEngagements(ctx context.Context, contactID string, limit int) (*hubspot.EngagementPage, error) {
	args := m.Called(ctx, contactID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.EngagementPage), args.Error(1)
}

func (m *mockCRM) CreateTask(ctx context.Context, properties map[string]string) (*hubspot.Object, error) {
	args := m.Called(ctx, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.Object), args.Error(1)
}

func (m *mockCRM) AssociateTaskWithContact(ctx context.Context, taskID, contactID string) error {
	args := m.Called(ctx, taskID, contactID)
	return args.Error(0)
}
