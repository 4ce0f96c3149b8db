package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"craftorders/internal/adapters/out/postgres/catalogrepo"
	"craftorders/internal/core/domain/model/catalog"
	"craftorders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CatalogReaderIntegrationTestSuite verifies catalog resolution against a
// real PostgreSQL instance.
type CatalogReaderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	reader    *catalogrepo.GormCatalogReader
}

func (suite *CatalogReaderIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&catalogrepo.ItemDTO{}))
}

func (suite *CatalogReaderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE items").Error)
	suite.reader = catalogrepo.NewGormCatalogReader(suite.db)
}

func (suite *CatalogReaderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogReaderIntegrationTestSuite) seedItem(item *catalog.Item) {
	dto := catalogrepo.FromDomain(item)
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *CatalogReaderIntegrationTestSuite) TestFindByIDs_ResolvesAllPricingModes() {
	ctx := context.Background()

	fixedID := kernel.NewUUID()
	fixed, err := catalog.NewFixedPriceItem(fixedID, "Walnut cutting board", 45.0, true, []string{"natural", "dark"})
	suite.Require().NoError(err)
	suite.seedItem(fixed)

	rangeID := kernel.NewUUID()
	ranged, err := catalog.NewRangePriceItem(rangeID, "Ceramic vase", 15.0, 30.0, true, nil)
	suite.Require().NoError(err)
	suite.seedItem(ranged)

	customID := kernel.NewUUID()
	custom, err := catalog.NewCustomPriceItem(customID, "Engraved sign", true, nil)
	suite.Require().NoError(err)
	suite.seedItem(custom)

	items, err := suite.reader.FindByIDs(ctx, []kernel.UUID{fixedID, rangeID, customID})
	suite.Require().NoError(err)
	suite.Require().Len(items, 3)

	byID := make(map[string]*catalog.Item, len(items))
	for _, item := range items {
		byID[item.ID().String()] = item
	}

	loadedFixed := byID[fixedID.String()]
	suite.Require().NotNil(loadedFixed)
	suite.Equal(catalog.PricingModeFixed, loadedFixed.PricingMode())
	suite.InDelta(45.0, loadedFixed.FixedPrice(), 0.001)
	suite.Equal([]string{"natural", "dark"}, loadedFixed.Colors())
	suite.True(loadedFixed.OffersColor("Natural"))

	loadedRange := byID[rangeID.String()]
	suite.Require().NotNil(loadedRange)
	suite.Equal(catalog.PricingModeRange, loadedRange.PricingMode())
	minPrice, maxPrice := loadedRange.PriceRange()
	suite.InDelta(15.0, minPrice, 0.001)
	suite.InDelta(30.0, maxPrice, 0.001)

	loadedCustom := byID[customID.String()]
	suite.Require().NotNil(loadedCustom)
	suite.Equal(catalog.PricingModeCustom, loadedCustom.PricingMode())
}

func (suite *CatalogReaderIntegrationTestSuite) TestFindByIDs_AbsentIdsAreOmitted() {
	ctx := context.Background()

	knownID := kernel.NewUUID()
	item, err := catalog.NewFixedPriceItem(knownID, "Walnut cutting board", 45.0, true, nil)
	suite.Require().NoError(err)
	suite.seedItem(item)

	items, err := suite.reader.FindByIDs(ctx, []kernel.UUID{knownID, kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal(knownID.String(), items[0].ID().String())
}

func (suite *CatalogReaderIntegrationTestSuite) TestFindByIDs_UnavailableItemsAreStillResolved() {
	ctx := context.Background()

	itemID := kernel.NewUUID()
	item, err := catalog.NewFixedPriceItem(itemID, "Retired board", 45.0, false, nil)
	suite.Require().NoError(err)
	suite.seedItem(item)

	items, err := suite.reader.FindByIDs(ctx, []kernel.UUID{itemID})
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.False(items[0].IsAvailable())
}

func (suite *CatalogReaderIntegrationTestSuite) TestFindByIDs_EmptyInput() {
	items, err := suite.reader.FindByIDs(context.Background(), nil)
	suite.Require().NoError(err)
	suite.Empty(items)
}

func TestCatalogReaderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogReaderIntegrationTestSuite))
}
