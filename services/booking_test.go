package services

import (
	"context"
	"testing"

	db "ClinicSphere/config/db"
	"ClinicSphere/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type walletCall struct {
	patientID primitive.ObjectID
	doctorID  primitive.ObjectID
	debit     float64
	credit    float64
}

// recordingFundsMover stands in for the wallet service so the booking flow
// can run against a mocked database without touching real wallets.
type recordingFundsMover struct {
	transfers []walletCall
	reverts   []walletCall
}

func (m *recordingFundsMover) TransferFunds(ctx context.Context, patientID primitive.ObjectID, doctorID primitive.ObjectID, debit float64, credit float64) error {
	m.transfers = append(m.transfers, walletCall{patientID, doctorID, debit, credit})
	return nil
}

func (m *recordingFundsMover) RevertTransfer(ctx context.Context, patientID primitive.ObjectID, doctorID primitive.ObjectID, debit float64, credit float64) error {
	m.reverts = append(m.reverts, walletCall{patientID, doctorID, debit, credit})
	return nil
}

func swapWallet(mt *mtest.T, fake FundsMover) {
	old := Wallet
	Wallet = fake
	mt.Cleanup(func() { Wallet = old })
}

func userDoc(id primitive.ObjectID, username string, userType string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: username},
		{Key: "type", Value: userType},
	}
}

func TestMakeAppointmentWalletFlow(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	patientDoc := func(wallet float64) bson.D {
		return bson.D{
			{Key: "_id", Value: patientID},
			{Key: "userID", Value: userID},
			{Key: "name", Value: "Amira"},
			{Key: "walletMoney", Value: wallet},
		}
	}
	doctorDoc := bson.D{
		{Key: "_id", Value: doctorID},
		{Key: "userID", Value: primitive.NewObjectID()},
		{Key: "name", Value: "Omar"},
		{Key: "hourlyRate", Value: 100.0},
		{Key: "availableTimes", Value: bson.A{}},
	}
	input := BookAppointmentInput{
		Username:         "amira",
		DoctorID:         doctorID.Hex(),
		Date:             "2026-04-01T09:00:00Z",
		ToPayUsingWallet: 150,
		SessionPrice:     150,
	}

	mt.Run("insufficient funds leaves both wallets untouched", func(mt *mtest.T) {
		db.SetDatabase(mt.DB)
		fake := &recordingFundsMover{}
		swapWallet(mt, fake)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch, userDoc(userID, "amira", util.TypePatient)),
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch, userDoc(userID, "amira", util.TypePatient)),
			mtest.CreateCursorResponse(0, "clinic.PATIENT", mtest.FirstBatch, patientDoc(100)),
			mtest.CreateCursorResponse(0, "clinic.DOCTOR", mtest.FirstBatch, doctorDoc),
		)

		_, err := MakeAppointment(context.Background(), input)
		require.Error(mt, err)
		assert.Equal(mt, 403, util.StatusOf(err))
		assert.Equal(mt, util.NOT_ENOUGH_MONEY, err.Error())
		assert.Empty(mt, fake.transfers)
		assert.Empty(mt, fake.reverts)
	})

	mt.Run("booking debits the payment and credits the hourly rate", func(mt *mtest.T) {
		db.SetDatabase(mt.DB)
		fake := &recordingFundsMover{}
		swapWallet(mt, fake)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch, userDoc(userID, "amira", util.TypePatient)),
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch, userDoc(userID, "amira", util.TypePatient)),
			mtest.CreateCursorResponse(0, "clinic.PATIENT", mtest.FirstBatch, patientDoc(500)),
			mtest.CreateCursorResponse(0, "clinic.DOCTOR", mtest.FirstBatch, doctorDoc),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "clinic.PATIENT", mtest.FirstBatch, patientDoc(350)),
			mtest.CreateSuccessResponse(),
		)

		appointment, err := MakeAppointment(context.Background(), input)
		require.NoError(mt, err)
		assert.Equal(mt, util.StatusUpcoming, appointment.Status)
		assert.Equal(mt, 150.0, appointment.PaidByPatient)
		assert.Equal(mt, 100.0, appointment.PaidToDoctor)
		assert.False(mt, appointment.ID.IsZero())

		require.Len(mt, fake.transfers, 1)
		assert.Equal(mt, walletCall{patientID, doctorID, 150, 100}, fake.transfers[0])
		assert.Empty(mt, fake.reverts)
	})

	mt.Run("failed creation reverts the transfer", func(mt *mtest.T) {
		db.SetDatabase(mt.DB)
		fake := &recordingFundsMover{}
		swapWallet(mt, fake)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch, userDoc(userID, "amira", util.TypePatient)),
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch, userDoc(userID, "amira", util.TypePatient)),
			mtest.CreateCursorResponse(0, "clinic.PATIENT", mtest.FirstBatch, patientDoc(500)),
			mtest.CreateCursorResponse(0, "clinic.DOCTOR", mtest.FirstBatch, doctorDoc),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "insert failed"}),
		)

		_, err := MakeAppointment(context.Background(), input)
		require.Error(mt, err)
		assert.Equal(mt, 500, util.StatusOf(err))
		assert.Equal(mt, util.APPOINTMENT_CREATION_FAILED, err.Error())

		require.Len(mt, fake.transfers, 1)
		require.Len(mt, fake.reverts, 1)
		assert.Equal(mt, fake.transfers[0], fake.reverts[0])
	})
}

func TestRequestFollowUpRejectsWhenOneExists(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	parentID := primitive.NewObjectID()
	parentDoc := bson.D{
		{Key: "_id", Value: parentID},
		{Key: "patientID", Value: primitive.NewObjectID()},
		{Key: "doctorID", Value: primitive.NewObjectID()},
		{Key: "date", Value: "2026-04-01T09:00:00Z"},
		{Key: "status", Value: util.StatusUpcoming},
	}

	mt.Run("a pending request blocks a second one", func(mt *mtest.T) {
		db.SetDatabase(mt.DB)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "clinic.APPOINTMENT", mtest.FirstBatch, parentDoc),
			mtest.CreateCursorResponse(0, "clinic.FOLLOWUP_REQUEST", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "appointmentID", Value: parentID},
				{Key: "status", Value: util.FollowUpPending},
			}),
		)

		_, err := RequestFollowUpAppointment(context.Background(), parentID.Hex(), "2026-04-08T09:00:00Z")
		require.Error(mt, err)
		assert.Equal(mt, 409, util.StatusOf(err))
		assert.Equal(mt, util.FOLLOW_UP_ALREADY_REQUESTED, err.Error())
	})

	mt.Run("an already created follow-up appointment blocks a request", func(mt *mtest.T) {
		db.SetDatabase(mt.DB)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "clinic.APPOINTMENT", mtest.FirstBatch, parentDoc),
			mtest.CreateCursorResponse(0, "clinic.FOLLOWUP_REQUEST", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "clinic.APPOINTMENT", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "parentID", Value: parentID.Hex()},
			}),
		)

		_, err := RequestFollowUpAppointment(context.Background(), parentID.Hex(), "2026-04-08T09:00:00Z")
		require.Error(mt, err)
		assert.Equal(mt, 409, util.StatusOf(err))
		assert.Equal(mt, util.FOLLOW_UP_ALREADY_REQUESTED, err.Error())
	})
}

func TestAddAdminPersistsEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("email lands on the user record", func(mt *mtest.T) {
		db.SetDatabase(mt.DB)

		adminID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "clinic.USER", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: adminID},
				{Key: "username", Value: "root"},
				{Key: "type", Value: util.TypeAdmin},
				{Key: "email", Value: "root@clinic.example"},
			}),
		)

		user, err := AddAdmin(context.Background(), AddAdminInput{
			Username: "root",
			Password: "Sup3r!user",
			Email:    "root@clinic.example",
		})
		require.NoError(mt, err)
		assert.Equal(mt, "root@clinic.example", user.Email)
		assert.Equal(mt, util.TypeAdmin, user.Type)
		assert.Empty(mt, user.Password)
	})
}
