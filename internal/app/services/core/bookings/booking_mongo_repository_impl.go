package bookings

import (
	"context"
	"fmt"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	indexConfirmedSlot = "uniq_confirmed_slot"
	indexOrderID       = "uniq_order_id"
	indexDateStatus    = "date_status"
)

type BookingMongoRepository struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
}

func NewBookingMongoRepository(db *mongo.Database) contracts.BookingRepository {
	return &BookingMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionBookings),
		Counters:   db.Collection(constvars.MongoCollectionCounters),
	}
}

// EnsureIndexes creates the partial unique index that allows at most one
// Confirmed booking per (date, time), plus the order id lookup index.
func (r *BookingMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetName(indexConfirmedSlot).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.BookingStatusConfirmed}),
		},
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetName(indexOrderID).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName(indexDateStatus),
		},
	}

	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoCollectionBookings)
	}
	return nil
}

func (r *BookingMongoRepository) NextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := r.Counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": constvars.MongoCounterBookingID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, exceptions.ErrMongoDBIncrementCounter(err, constvars.MongoCounterBookingID)
	}
	return counter.Seq, nil
}

func (r *BookingMongoRepository) Create(ctx context.Context, booking *models.Booking) error {
	_, err := r.Collection.InsertOne(ctx, booking)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *BookingMongoRepository) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BookingMongoRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *BookingMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	var booking models.Booking
	err := r.Collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) Find(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	query := bson.M{}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	createdAt := bson.M{}
	if filter.CreatedBefore != nil {
		createdAt["$lt"] = *filter.CreatedBefore
	}
	if filter.CreatedAfter != nil {
		createdAt["$gte"] = *filter.CreatedAfter
	}
	if len(createdAt) > 0 {
		query["created_at"] = createdAt
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	cursor, err := r.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, nil
}

func (r *BookingMongoRepository) FindConfirmedSlots(ctx context.Context, dates []string) (map[string]map[string]bool, error) {
	booked := make(map[string]map[string]bool, len(dates))
	if len(dates) == 0 {
		return booked, nil
	}

	cursor, err := r.Collection.Find(ctx,
		bson.M{
			"date":   bson.M{"$in": dates},
			"status": models.BookingStatusConfirmed,
		},
		options.Find().SetProjection(bson.M{"date": 1, "time": 1}),
	)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var slot struct {
			Date string `bson:"date"`
			Time string `bson:"time"`
		}
		if err := cursor.Decode(&slot); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		if booked[slot.Date] == nil {
			booked[slot.Date] = make(map[string]bool)
		}
		booked[slot.Date][slot.Time] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return booked, nil
}

func (r *BookingMongoRepository) Confirm(ctx context.Context, id int64, paymentID string, confirmedAt time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := r.Collection.FindOneAndUpdate(
		ctx,
		bson.M{
			"_id":    id,
			"status": bson.M{"$in": []models.BookingStatus{models.BookingStatusPending, models.BookingStatusExpired}},
		},
		bson.M{"$set": bson.M{
			"status":       models.BookingStatusConfirmed,
			"payment_id":   paymentID,
			"confirmed_at": confirmedAt,
			"updated_at":   confirmedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if err == nil {
		return &booking, nil
	}

	if mongo.IsDuplicateKeyError(err) {
		current, findErr := r.FindByID(ctx, id)
		if findErr != nil || current == nil {
			return nil, exceptions.ErrSlotAlreadyBooked(fmt.Errorf("%w: %v", exceptions.ErrSlotConflict, err), "", "")
		}
		return nil, exceptions.ErrSlotAlreadyBooked(fmt.Errorf("%w: %v", exceptions.ErrSlotConflict, err), current.Date, current.Time)
	}
	if err == mongo.ErrNoDocuments {
		current, findErr := r.FindByID(ctx, id)
		if findErr != nil {
			return nil, findErr
		}
		if current == nil {
			return nil, exceptions.ErrBookingNotFound(err, fmt.Sprintf("id %d", id))
		}
		return nil, exceptions.ErrBookingNotPending(exceptions.ErrStatusConflict, id, current.Status.String())
	}
	return nil, exceptions.ErrMongoDBUpdateDocument(err)
}

func (r *BookingMongoRepository) TransitionStatus(ctx context.Context, id int64, from, to models.BookingStatus, update contracts.BookingUpdate) (bool, error) {
	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	if update.PaymentID != "" {
		set["payment_id"] = update.PaymentID
	}
	if update.RefundID != "" {
		set["refund_id"] = update.RefundID
	}
	if update.ConfirmedAt != nil {
		set["confirmed_at"] = *update.ConfirmedAt
	}

	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *BookingMongoRepository) RecordNotification(ctx context.Context, id int64, at time.Time) error {
	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"notification_count": 1},
			"$set": bson.M{"last_notified_at": at, "updated_at": at},
		},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *BookingMongoRepository) SetReceiptObject(ctx context.Context, id int64, objectName string) error {
	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"receipt_object": objectName, "updated_at": time.Now()}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
