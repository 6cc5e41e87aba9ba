package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
)

// testEnv wires services against an in-memory sqlite database so the
// transactional paths run for real.
type testEnv struct {
	db  *gorm.DB
	ctx context.Context
	org *entity.Org

	orders        *service.OrderService
	inventory     *service.InventoryService
	movements     *service.MovementService
	contacts      *service.ContactService
	protocols     *service.ProtocolService
	referrals     *service.ReferralService
	profiles      *service.ProfileService
	leads         *service.LeadService
	notifications *service.NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Org{},
		&entity.UserRole{},
		&entity.Profile{},
		&entity.Contact{},
		&entity.Protocol{},
		&entity.ProtocolItem{},
		&entity.LeadSubmission{},
		&entity.Peptide{},
		&entity.Lot{},
		&entity.Bottle{},
		&entity.Movement{},
		&entity.MovementItem{},
		&entity.SalesOrder{},
		&entity.SalesOrderItem{},
		&entity.Commission{},
		&entity.Notification{},
		&entity.ChatMessage{},
	))

	org := &entity.Org{Name: "Test Org", Slug: "test-org"}
	require.NoError(t, db.Create(org).Error)

	orderRepo := infraRepo.NewSalesOrderRepository(db)
	contactRepo := infraRepo.NewContactRepository(db)
	peptideRepo := infraRepo.NewPeptideRepository(db)
	lotRepo := infraRepo.NewLotRepository(db)
	bottleRepo := infraRepo.NewBottleRepository(db)
	movementRepo := infraRepo.NewMovementRepository(db)
	profileRepo := infraRepo.NewProfileRepository(db)
	commissionRepo := infraRepo.NewCommissionRepository(db)
	protocolRepo := infraRepo.NewProtocolRepository(db)
	referralRepo := infraRepo.NewReferralRepository(db)
	notificationRepo := infraRepo.NewNotificationRepository(db)
	leadRepo := infraRepo.NewLeadRepository(db)

	return &testEnv{
		db:  db,
		ctx: infraRepo.WithOrg(context.Background(), org.ID),
		org: org,

		orders:        service.NewOrderService(orderRepo, contactRepo, peptideRepo, profileRepo, commissionRepo),
		inventory:     service.NewInventoryService(peptideRepo, lotRepo, bottleRepo),
		movements:     service.NewMovementService(movementRepo, bottleRepo, contactRepo),
		contacts:      service.NewContactService(contactRepo, profileRepo),
		protocols:     service.NewProtocolService(protocolRepo, contactRepo, peptideRepo),
		referrals:     service.NewReferralService(profileRepo, referralRepo),
		profiles:      service.NewProfileService(profileRepo, commissionRepo),
		leads:         service.NewLeadService(leadRepo),
		notifications: service.NewNotificationService(notificationRepo),
	}
}

func (e *testEnv) createProfile(t *testing.T, role enum.AppRole, rate float64, parent *entity.Profile) *entity.Profile {
	t.Helper()
	profile := &entity.Profile{
		UserID:         uuid.New(),
		OrgID:          &e.org.ID,
		FullName:       fmt.Sprintf("%s %s", role, uuid.NewString()[:8]),
		Email:          uuid.NewString()[:8] + "@test.local",
		Role:           role,
		CommissionRate: rate,
		PriceMult:      1,
	}
	if parent != nil {
		profile.ParentRepID = &parent.ID
	}
	require.NoError(t, e.db.Create(profile).Error)
	return profile
}

func (e *testEnv) createContact(t *testing.T, name string, rep *entity.Profile) *entity.Contact {
	t.Helper()
	contact := &entity.Contact{
		OrgID: e.org.ID,
		Name:  name,
		Type:  enum.ContactTypeCustomer,
	}
	if rep != nil {
		contact.AssignedRepID = &rep.ID
	}
	require.NoError(t, e.db.Create(contact).Error)
	return contact
}

// createStock creates a peptide plus one lot of quantity bottles at
// costPerUnit dollars, and returns the peptide.
func (e *testEnv) createStock(t *testing.T, name string, quantity int, costPerUnit float64) *entity.Peptide {
	t.Helper()
	peptide, err := e.inventory.CreatePeptide(e.ctx, &service.CreatePeptideInput{
		Name: name,
		SKU:  "SKU-" + uuid.NewString()[:8],
	})
	require.NoError(t, err)

	_, err = e.inventory.CreateLot(e.ctx, &service.CreateLotInput{
		PeptideID:        peptide.ID,
		LotNumber:        "LOT-" + uuid.NewString()[:8],
		QuantityReceived: quantity,
		CostPerUnit:      costPerUnit,
	})
	require.NoError(t, err)
	return peptide
}

// backdateBottles shifts a lot's bottles into the past so allocation order
// is deterministic in tests.
func (e *testEnv) backdateBottles(t *testing.T, lotID uuid.UUID, age time.Duration) {
	t.Helper()
	err := e.db.Model(&entity.Bottle{}).
		Where("lot_id = ?", lotID).
		Update("created_at", time.Now().Add(-age)).Error
	require.NoError(t, err)
}

func (e *testEnv) bottleStatuses(t *testing.T, peptideID uuid.UUID) map[enum.BottleStatus]int {
	t.Helper()
	var bottles []entity.Bottle
	err := e.db.
		Joins("JOIN lots ON lots.id = bottles.lot_id").
		Where("lots.peptide_id = ?", peptideID).
		Find(&bottles).Error
	require.NoError(t, err)

	counts := make(map[enum.BottleStatus]int)
	for _, bottle := range bottles {
		counts[bottle.Status]++
	}
	return counts
}
