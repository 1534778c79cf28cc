package provision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stenvik/anbud/internal/byggdel"
	"github.com/stenvik/anbud/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testActor = models.Actor{UID: "u-1", Name: "Anna Andersson"}

// fakeEnsurer records calls and returns a canned result.
type fakeEnsurer struct {
	err    error
	calls  int
	done   chan string
	prefix string
}

func (f *fakeEnsurer) EnsureFolder(ctx context.Context, path string) (string, error) {
	f.calls++
	if f.done != nil {
		defer func() { f.done <- path }()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.prefix + path, nil
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A single connection so the in-memory database is shared with the
	// background attempt goroutine.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Byggdel{}, &models.Paket{}, &models.ProvisionJob{}, &models.AuditEntry{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestByggdel(t *testing.T, db *gorm.DB) *models.Byggdel {
	t.Helper()
	bd, err := byggdel.Create(db, byggdel.CreateOpts{
		CompanyID: "acme",
		ProjectID: "p1",
		Label:     "VS",
		Code:      "84",
	}, testActor)
	if err != nil {
		t.Fatalf("create byggdel: %v", err)
	}
	return bd
}

func TestEnqueueByggdel(t *testing.T) {
	db := testDB(t)
	bd := createTestByggdel(t, db)

	job, err := EnqueueByggdel(db, "Projekt/p1", *bd)
	if err != nil {
		t.Fatalf("EnqueueByggdel: %v", err)
	}
	if job.Status != "pending" {
		t.Errorf("Status = %q, want pending", job.Status)
	}
	if job.Path != "Projekt/p1/03 - Inköp och offerter/84 - VS" {
		t.Errorf("Path = %q", job.Path)
	}
}

func TestSweep_Success(t *testing.T) {
	db := testDB(t)
	bd := createTestByggdel(t, db)
	if _, err := EnqueueByggdel(db, "Projekt/p1", *bd); err != nil {
		t.Fatalf("EnqueueByggdel: %v", err)
	}

	fe := &fakeEnsurer{}
	done, err := Sweep(db, fe)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
	if fe.calls != 1 {
		t.Errorf("ensure calls = %d, want 1", fe.calls)
	}

	got, err := byggdel.Get(db, "acme", "p1", bd.ID)
	if err != nil {
		t.Fatalf("Get byggdel: %v", err)
	}
	if got.FolderPath != "Projekt/p1/03 - Inköp och offerter/84 - VS" {
		t.Errorf("FolderPath = %q, expected sweep to write it back", got.FolderPath)
	}
}

func TestSweep_FailureStaysPending(t *testing.T) {
	db := testDB(t)
	bd := createTestByggdel(t, db)
	job, err := EnqueueByggdel(db, "Projekt/p1", *bd)
	if err != nil {
		t.Fatalf("EnqueueByggdel: %v", err)
	}

	fe := &fakeEnsurer{err: errors.New("sharepoint down")}
	done, err := Sweep(db, fe)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if done != 0 {
		t.Errorf("done = %d, want 0", done)
	}

	var j models.ProvisionJob
	if err := db.First(&j, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if j.Status != "pending" || j.Attempts != 1 || j.LastError == "" {
		t.Errorf("job after failed sweep: status=%q attempts=%d lastError=%q", j.Status, j.Attempts, j.LastError)
	}

	got, err := byggdel.Get(db, "acme", "p1", bd.ID)
	if err != nil {
		t.Fatalf("Get byggdel: %v", err)
	}
	if got.FolderPath != "" {
		t.Errorf("FolderPath = %q, failure must not touch the record", got.FolderPath)
	}
}

func TestSweep_ParksJobAfterMaxAttempts(t *testing.T) {
	db := testDB(t)
	bd := createTestByggdel(t, db)
	job, err := EnqueueByggdel(db, "Projekt/p1", *bd)
	if err != nil {
		t.Fatalf("EnqueueByggdel: %v", err)
	}

	fe := &fakeEnsurer{err: errors.New("still down")}
	for i := 0; i < maxAttempts; i++ {
		if _, err := Sweep(db, fe); err != nil {
			t.Fatalf("Sweep #%d: %v", i, err)
		}
	}

	var j models.ProvisionJob
	if err := db.First(&j, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if j.Status != "failed" {
		t.Errorf("Status = %q after %d attempts, want failed", j.Status, maxAttempts)
	}
	if j.Attempts != maxAttempts {
		t.Errorf("Attempts = %d, want %d", j.Attempts, maxAttempts)
	}

	// Parked jobs are not retried again.
	before := fe.calls
	if _, err := Sweep(db, fe); err != nil {
		t.Fatalf("final Sweep: %v", err)
	}
	if fe.calls != before {
		t.Errorf("parked job was retried (calls %d -> %d)", before, fe.calls)
	}
}

func TestSweep_NilEnsurerIsNoOp(t *testing.T) {
	db := testDB(t)
	bd := createTestByggdel(t, db)
	if _, err := EnqueueByggdel(db, "Projekt/p1", *bd); err != nil {
		t.Fatalf("EnqueueByggdel: %v", err)
	}

	done, err := Sweep(db, nil)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if done != 0 {
		t.Errorf("done = %d, want 0 without an ensurer", done)
	}
}

func TestKickoff(t *testing.T) {
	db := testDB(t)
	bd := createTestByggdel(t, db)
	job, err := EnqueueByggdel(db, "Projekt/p1", *bd)
	if err != nil {
		t.Fatalf("EnqueueByggdel: %v", err)
	}

	fe := &fakeEnsurer{done: make(chan string, 1)}
	Kickoff(db, fe, job)

	select {
	case <-fe.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for background attempt")
	}

	// Poll for the status write that follows the ensure call.
	deadline := time.Now().Add(5 * time.Second)
	for {
		var j models.ProvisionJob
		if err := db.First(&j, job.ID).Error; err == nil && j.Status == "done" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("job never reached done")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestKickoff_NilEnsurerLeavesJobPending(t *testing.T) {
	db := testDB(t)
	bd := createTestByggdel(t, db)
	job, err := EnqueueByggdel(db, "Projekt/p1", *bd)
	if err != nil {
		t.Fatalf("EnqueueByggdel: %v", err)
	}

	Kickoff(db, nil, job)

	var j models.ProvisionJob
	if err := db.First(&j, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if j.Status != "pending" {
		t.Errorf("Status = %q, want pending", j.Status)
	}
}
