package schedulerRepo

import (
	recordsRepo "govconnect/database/repository/records"
	timeslotRepo "govconnect/database/repository/timeslot"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoSchedulerRepo implements SchedulerRepository on top of the ledger and record
// repositories, sharing one session transaction when the deployment supports it.
type MongoSchedulerRepo struct {
	client        *mongo.Client
	transactional bool
	slots         timeslotRepo.TimeSlotRepository
	records       recordsRepo.RecordRepository
	logger        *zap.Logger
}

// NewMongoSchedulerRepo constructs a new instance of MongoSchedulerRepo. With
// transactional false (standalone mongod) writes run without a session and failed
// bookings are compensated.
func NewMongoSchedulerRepo(
	client *mongo.Client,
	transactional bool,
	slots timeslotRepo.TimeSlotRepository,
	records recordsRepo.RecordRepository,
	logger *zap.Logger,
) SchedulerRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoSchedulerRepo{
		client:        client,
		transactional: transactional,
		slots:         slots,
		records:       records,
		logger:        logger,
	}
}
