package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitalis-inc/vitalis-api/schema"
)

type ReportTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func NewReportTestSuite(connURI, dbName string) *ReportTestSuite {
	return &ReportTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ReportTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
	if err := s.LoadMongoDBFixtures(); err != nil {
		s.T().Fatal(err)
	}
}

// LoadMongoDBFixtures will preload fixtures into test mongodb
func (s *ReportTestSuite) LoadMongoDBFixtures() error {
	ctx := context.Background()

	if _, err := s.testDatabase.Collection(schema.HealthReportCollection).InsertMany(ctx, []interface{}{
		schema.SavedReport{
			ID:       "report-list-old",
			UserID:   "account-test-report-list",
			FileName: "cbc-january.pdf",
			FileType: "application/pdf",
			Result:   schema.AnalysisResult{Summary: "older report"},
		},
		schema.SavedReport{
			ID:       "report-list-other-owner",
			UserID:   "account-someone-else",
			FileName: "mri.pdf",
			FileType: "application/pdf",
			Result:   schema.AnalysisResult{Summary: "not yours"},
		},
		schema.SavedReport{
			ID:       "report-to-delete",
			UserID:   "account-test-report-delete",
			FileName: "xray.png",
			FileType: "image/png",
			Result:   schema.AnalysisResult{Summary: "delete me"},
		},
		schema.SavedReport{
			ID:       "report-delete-all-1",
			UserID:   "account-test-report-delete-all",
			FileName: "a.pdf",
			FileType: "application/pdf",
		},
		schema.SavedReport{
			ID:       "report-delete-all-2",
			UserID:   "account-test-report-delete-all",
			FileName: "b.pdf",
			FileType: "application/pdf",
		},
	}); err != nil {
		return err
	}

	return nil
}

// CleanMongoDB drop the whole test mongodb
func (s *ReportTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

// TestUpsertReportAssignsID tests that storing a report without an id
// assigns one and stamps a timestamp
func (s *ReportTestSuite) TestUpsertReportAssignsID() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	saved, err := store.UpsertReport(schema.SavedReport{
		UserID:   "account-test-report-upsert",
		FileName: "blood-panel.pdf",
		FileType: "application/pdf",
		Result:   schema.AnalysisResult{Summary: "mild anemia"},
	})
	s.NoError(err)
	s.NotEmpty(saved.ID)
	s.False(saved.Timestamp.IsZero())

	count, err := s.testDatabase.Collection(schema.HealthReportCollection).CountDocuments(ctx, bson.M{"id": saved.ID})
	s.NoError(err)
	s.Equal(int64(1), count)
}

// TestUpsertReportReplacesExisting tests that storing a report with a
// known id replaces the document instead of adding a second one
func (s *ReportTestSuite) TestUpsertReportReplacesExisting() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	first, err := store.UpsertReport(schema.SavedReport{
		UserID:   "account-test-report-replace",
		FileName: "lipids.pdf",
		FileType: "application/pdf",
		Result:   schema.AnalysisResult{Summary: "first pass"},
	})
	s.NoError(err)

	first.Result.Summary = "second pass"
	_, err = store.UpsertReport(*first)
	s.NoError(err)

	count, err := s.testDatabase.Collection(schema.HealthReportCollection).CountDocuments(ctx, bson.M{"id": first.ID})
	s.NoError(err)
	s.Equal(int64(1), count)

	var stored schema.SavedReport
	s.NoError(s.testDatabase.Collection(schema.HealthReportCollection).
		FindOne(ctx, bson.M{"id": first.ID}).Decode(&stored))
	s.Equal("second pass", stored.Result.Summary)
}

// TestListReportsScopedToOwner tests that listing only yields the
// requester's reports, newest first
func (s *ReportTestSuite) TestListReportsScopedToOwner() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	newer, err := store.UpsertReport(schema.SavedReport{
		UserID:   "account-test-report-list",
		FileName: "cbc-february.pdf",
		FileType: "application/pdf",
		Result:   schema.AnalysisResult{Summary: "newer report"},
	})
	s.NoError(err)

	reports, err := store.ListReports("account-test-report-list")
	s.NoError(err)
	s.Len(reports, 2)
	s.Equal(newer.ID, reports[0].ID)
	s.Equal("report-list-old", reports[1].ID)
}

// TestListReportsEmptyOwner tests that an owner without reports gets an
// empty list, not nil
func (s *ReportTestSuite) TestListReportsEmptyOwner() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	reports, err := store.ListReports("account-without-reports")
	s.NoError(err)
	s.NotNil(reports)
	s.Len(reports, 0)
}

// TestDeleteReport tests removing one report, and that deleting an
// unknown id is not an error
func (s *ReportTestSuite) TestDeleteReport() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	s.NoError(store.DeleteReport("account-test-report-delete", "report-to-delete"))

	count, err := s.testDatabase.Collection(schema.HealthReportCollection).CountDocuments(ctx, bson.M{"id": "report-to-delete"})
	s.NoError(err)
	s.Equal(int64(0), count)

	s.NoError(store.DeleteReport("account-test-report-delete", "report-never-existed"))
}

// TestDeleteReportScopedToOwner tests that deleting by id cannot touch
// another owner's report
func (s *ReportTestSuite) TestDeleteReportScopedToOwner() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	s.NoError(store.DeleteReport("account-test-report-delete", "report-list-other-owner"))

	count, err := s.testDatabase.Collection(schema.HealthReportCollection).CountDocuments(ctx, bson.M{"id": "report-list-other-owner"})
	s.NoError(err)
	s.Equal(int64(1), count)
}

// TestDeleteAllReports tests removing every report of one owner
func (s *ReportTestSuite) TestDeleteAllReports() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	s.NoError(store.DeleteAllReports("account-test-report-delete-all"))

	count, err := s.testDatabase.Collection(schema.HealthReportCollection).CountDocuments(ctx, bson.M{
		"user_id": "account-test-report-delete-all",
	})
	s.NoError(err)
	s.Equal(int64(0), count)
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to s.Run
func TestReportTestSuite(t *testing.T) {
	suite.Run(t, NewReportTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "test-db"))
}
