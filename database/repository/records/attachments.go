package recordsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"govconnect/models"
	"govconnect/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddFile appends fileURL to the appointment's attachment, creating the record on
// first use. $addToSet keeps the list free of duplicates and in insertion order.
func (r *mongoRecordRepo) AddFile(ctx context.Context, appointmentID, fileURL string) (*models.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"appointmentId": appointmentID}
	update := bson.M{
		"$addToSet":    bson.M{"fileUrls": fileURL},
		"$set":         bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{"id": uuid.New().String()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var att models.Attachment
	err := r.attachments.FindOneAndUpdate(ctx, filter, update, opts).Decode(&att)
	if mongo.IsDuplicateKeyError(err) {
		// Concurrent first add created the record; append to it.
		opts.SetUpsert(false)
		err = r.attachments.FindOneAndUpdate(ctx, filter, update, opts).Decode(&att)
	}
	if err != nil {
		return nil, fmt.Errorf("error adding file to attachment: %w", err)
	}
	return &att, nil
}

func (r *mongoRecordRepo) GetAttachmentByAppointment(ctx context.Context, appointmentID string) (*models.Attachment, error) {
	return r.findAttachment(ctx, bson.M{"appointmentId": appointmentID})
}

func (r *mongoRecordRepo) GetAttachment(ctx context.Context, id string) (*models.Attachment, error) {
	return r.findAttachment(ctx, bson.M{"id": id})
}

func (r *mongoRecordRepo) findAttachment(ctx context.Context, filter bson.M) (*models.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var att models.Attachment
	err := r.attachments.FindOne(ctx, filter).Decode(&att)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("attachment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching attachment: %w", err)
	}
	return &att, nil
}

// RemoveFile pulls fileURL from the attachment. When it was the last URL the record
// is deleted and a nil attachment is returned.
func (r *mongoRecordRepo) RemoveFile(ctx context.Context, attachmentID, fileURL string) (*models.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"id": attachmentID, "fileUrls": fileURL}
	update := bson.M{
		"$pull": bson.M{"fileUrls": fileURL},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var att models.Attachment
	err := r.attachments.FindOneAndUpdate(ctx, filter, update, opts).Decode(&att)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := r.GetAttachment(ctx, attachmentID); getErr != nil {
			return nil, getErr
		}
		return nil, utils.NotFound("file URL not found in the attachment")
	}
	if err != nil {
		return nil, fmt.Errorf("error removing file from attachment: %w", err)
	}

	if len(att.FileURLs) > 0 {
		return &att, nil
	}
	_, err = r.attachments.DeleteOne(ctx, bson.M{"id": attachmentID, "fileUrls": bson.M{"$size": 0}})
	if err != nil {
		return nil, fmt.Errorf("error deleting empty attachment: %w", err)
	}
	return nil, nil
}
