package services

import (
	"context"
	"log"
	"time"

	db "ClinicSphere/config/db"
	redis "ClinicSphere/config/redis"
	"ClinicSphere/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FundsMover is the boundary around the patient/doctor wallet transfer so a
// transactional implementation can replace the sequential one without
// touching the booking flow.
type FundsMover interface {
	TransferFunds(ctx context.Context, patientID primitive.ObjectID, doctorID primitive.ObjectID, debit float64, credit float64) error
	RevertTransfer(ctx context.Context, patientID primitive.ObjectID, doctorID primitive.ObjectID, debit float64, credit float64) error
}

// walletService performs the two wallet writes sequentially, the way the
// system has always done it. There is no transaction wrapping the pair; a
// crash between the writes leaves the wallets inconsistent until the
// best-effort revert runs.
type walletService struct{}

var Wallet FundsMover = walletService{}

func incWallet(ctx context.Context, collection string, id primitive.ObjectID, delta float64) error {
	coll := db.OpenCollections(collection)
	update := bson.M{
		"$inc": bson.M{"walletMoney": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": id}, update); err != nil {
		return err
	}
	key := util.PatientKey
	if collection == util.DoctorCollection {
		key = util.DoctorKey
	}
	if err := redis.DeleteCache(ctx, key+id.Hex()); err != nil {
		log.Println("Error invalidating wallet cache:", err)
	}
	return nil
}

/*
* Debit the patient wallet
* Credit the doctor wallet
* If the credit fails, put the debit back
 */
func (walletService) TransferFunds(ctx context.Context, patientID primitive.ObjectID, doctorID primitive.ObjectID, debit float64, credit float64) error {
	if err := incWallet(ctx, util.PatientCollection, patientID, -debit); err != nil {
		log.Println("Error debiting patient wallet:", err)
		return err
	}
	if err := incWallet(ctx, util.DoctorCollection, doctorID, credit); err != nil {
		log.Println("Error crediting doctor wallet:", err)
		if revertErr := incWallet(ctx, util.PatientCollection, patientID, debit); revertErr != nil {
			log.Println("Error reverting patient debit:", revertErr)
		}
		return err
	}
	return nil
}

/*
* Undo a previous transfer with the mirror writes
 */
func (walletService) RevertTransfer(ctx context.Context, patientID primitive.ObjectID, doctorID primitive.ObjectID, debit float64, credit float64) error {
	if err := incWallet(ctx, util.PatientCollection, patientID, debit); err != nil {
		log.Println("Error refunding patient wallet:", err)
		return err
	}
	if err := incWallet(ctx, util.DoctorCollection, doctorID, -credit); err != nil {
		log.Println("Error clawing back doctor wallet:", err)
		return err
	}
	return nil
}
