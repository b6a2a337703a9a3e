package services

import (
	"context"
	"log"
	"time"

	db "ClinicSphere/config/db"
	"ClinicSphere/models"
	"ClinicSphere/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthPackageInput struct {
	Name                       string
	PricePerYear               float64
	SessionDiscount            float64
	MedicineDiscount           float64
	FamilySubscriptionDiscount float64
}

func CreateHealthPackage(ctx context.Context, input HealthPackageInput) (*models.HealthPackage, error) {
	now := time.Now()
	pkg := models.HealthPackage{
		Name:                       input.Name,
		PricePerYear:               input.PricePerYear,
		SessionDiscount:            input.SessionDiscount,
		MedicineDiscount:           input.MedicineDiscount,
		FamilySubscriptionDiscount: input.FamilySubscriptionDiscount,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	coll := db.OpenCollections(util.HealthPackageCollection)
	inserted, err := db.CreateOne(ctx, coll, pkg)
	if err != nil {
		log.Println("Error creating health package:", err)
		return nil, err
	}
	pkg.ID = inserted.InsertedID.(primitive.ObjectID)
	return &pkg, nil
}

func GetHealthPackages(ctx context.Context) ([]models.HealthPackage, error) {
	coll := db.OpenCollections(util.HealthPackageCollection)
	var packages []models.HealthPackage
	if err := db.FindAll(ctx, coll, bson.M{}, &packages); err != nil {
		log.Println("Error fetching health packages:", err)
		return nil, err
	}
	return packages, nil
}

func getHealthPackageByID(ctx context.Context, id primitive.ObjectID) (*models.HealthPackage, error) {
	coll := db.OpenCollections(util.HealthPackageCollection)
	var pkg models.HealthPackage
	if err := db.FindOne(ctx, coll, bson.M{"_id": id}, &pkg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFoundError(util.HEALTH_PACKAGE_NOT_FOUND)
		}
		return nil, err
	}
	return &pkg, nil
}

func UpdateHealthPackage(ctx context.Context, packageID string, input HealthPackageInput) (*models.HealthPackage, error) {
	id, err := hexToObjectID(packageID)
	if err != nil {
		return nil, err
	}
	pkg, err := getHealthPackageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg.Name = input.Name
	pkg.PricePerYear = input.PricePerYear
	pkg.SessionDiscount = input.SessionDiscount
	pkg.MedicineDiscount = input.MedicineDiscount
	pkg.FamilySubscriptionDiscount = input.FamilySubscriptionDiscount
	pkg.UpdatedAt = time.Now()

	coll := db.OpenCollections(util.HealthPackageCollection)
	update := bson.M{"$set": bson.M{
		"name":                       pkg.Name,
		"pricePerYear":               pkg.PricePerYear,
		"sessionDiscount":            pkg.SessionDiscount,
		"medicineDiscount":           pkg.MedicineDiscount,
		"familySubscriptionDiscount": pkg.FamilySubscriptionDiscount,
		"updatedAt":                  pkg.UpdatedAt,
	}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		log.Println("Error updating health package:", err)
		return nil, err
	}
	return pkg, nil
}

func DeleteHealthPackage(ctx context.Context, packageID string) error {
	id, err := hexToObjectID(packageID)
	if err != nil {
		return err
	}
	if _, err := getHealthPackageByID(ctx, id); err != nil {
		return err
	}
	coll := db.OpenCollections(util.HealthPackageCollection)
	if _, err := db.DeleteOne(ctx, coll, bson.M{"_id": id}); err != nil {
		log.Println("Error deleting health package:", err)
		return err
	}
	return nil
}

/*
* Put the package reference on the patient record
 */
func SubscribeToHealthPackage(ctx context.Context, patientUsername string, packageID string) error {
	patient, err := GetPatientByUsername(ctx, patientUsername)
	if err != nil {
		return err
	}
	id, err := hexToObjectID(packageID)
	if err != nil {
		return err
	}
	if _, err := getHealthPackageByID(ctx, id); err != nil {
		return err
	}

	coll := db.OpenCollections(util.PatientCollection)
	update := bson.M{"$set": bson.M{"healthPackageId": id.Hex(), "updatedAt": time.Now()}}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": patient.ID}, update); err != nil {
		log.Println("Error subscribing to health package:", err)
		return err
	}
	return invalidatePatientCaches(ctx, patient, patientUsername)
}

func UnsubscribeFromHealthPackage(ctx context.Context, patientUsername string) error {
	patient, err := GetPatientByUsername(ctx, patientUsername)
	if err != nil {
		return err
	}
	coll := db.OpenCollections(util.PatientCollection)
	update := bson.M{
		"$unset": bson.M{"healthPackageId": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": patient.ID}, update); err != nil {
		log.Println("Error unsubscribing from health package:", err)
		return err
	}
	return invalidatePatientCaches(ctx, patient, patientUsername)
}
