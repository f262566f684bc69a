package booking

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/dto/responses"
	"telecare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// appointmentAPIClient talks to the appointment store over HTTP. Server
// verdicts (validation, conflict) surface as CustomError with the server's
// status code; anything else is a transport failure the caller may retry.
type appointmentAPIClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *logrus.Logger
}

func NewAppointmentAPIClient(internalConfig *config.InternalConfig, logger *logrus.Logger) contracts.AppointmentAPIClient {
	return &appointmentAPIClient{
		BaseUrl: internalConfig.Sync.StoreBaseUrl,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Sync.RequestTimeoutInSeconds) * time.Second,
		},
		Log: logger,
	}
}

func (c *appointmentAPIClient) CreateAppointment(ctx context.Context, request *requests.CreateAppointment, attachments []contracts.UploadedFile) (*models.Appointment, error) {
	body, contentType, err := buildSubmissionBody(request, attachments)
	if err != nil {
		return nil, err
	}

	endpoint := c.BaseUrl + "/appointments"
	httpRequest, err := http.NewRequestWithContext(ctx, constvars.MethodPost, endpoint, body)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, contentType)

	c.Log.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"file_count": len(attachments),
	}).Info("submitting appointment to store")

	httpResponse, err := c.HTTPClient.Do(httpRequest)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer httpResponse.Body.Close()

	var envelope struct {
		Success bool                  `json:"success"`
		Message string                `json:"message"`
		Warning string                `json:"warning"`
		Data    responses.Appointment `json:"data"`
	}

	switch httpResponse.StatusCode {
	case constvars.StatusCreated, constvars.StatusOK:
		if err := json.NewDecoder(httpResponse.Body).Decode(&envelope); err != nil {
			return nil, exceptions.ErrDecodeResponse(err, "appointment store")
		}
		return appointmentFromResponse(&envelope.Data), nil
	case constvars.StatusBadRequest:
		_ = json.NewDecoder(httpResponse.Body).Decode(&envelope)
		return nil, exceptions.ErrSubmitRejected(fmt.Errorf("store returned status 400"), envelope.Message)
	case constvars.StatusConflict:
		_ = json.NewDecoder(httpResponse.Body).Decode(&envelope)
		return nil, exceptions.ErrAppointmentConflict(fmt.Errorf("store returned status 409"))
	case constvars.StatusLocked:
		_ = json.NewDecoder(httpResponse.Body).Decode(&envelope)
		return nil, exceptions.ErrSubmitContended(fmt.Errorf("store returned status 423"))
	default:
		return nil, exceptions.ErrSendHTTPRequest(fmt.Errorf("store returned status %d", httpResponse.StatusCode))
	}
}

// buildSubmissionBody renders the multipart form the store's create endpoint
// accepts: a "data" field with the JSON payload plus one "attachments" part
// per file.
func buildSubmissionBody(request *requests.CreateAppointment, attachments []contracts.UploadedFile) (*bytes.Buffer, string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, "", exceptions.ErrCannotMarshalJSON(err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("data", string(payload)); err != nil {
		return nil, "", exceptions.ErrCannotMarshalJSON(err)
	}
	for _, attachment := range attachments {
		part, err := writer.CreateFormFile("attachments", attachment.FileName)
		if err != nil {
			return nil, "", exceptions.ErrCannotMarshalJSON(err)
		}
		if _, err := part.Write(attachment.Content); err != nil {
			return nil, "", exceptions.ErrCannotMarshalJSON(err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", exceptions.ErrCannotMarshalJSON(err)
	}

	return body, writer.FormDataContentType(), nil
}

func appointmentFromResponse(response *responses.Appointment) *models.Appointment {
	return &models.Appointment{
		ID:           response.ID,
		Specialty:    response.Specialty,
		DoctorID:     response.DoctorID,
		DoctorName:   response.DoctorName,
		PatientName:  response.PatientName,
		PatientEmail: response.PatientEmail,
		Date:         response.Date,
		Time:         response.Time,
		Status:       models.AppointmentStatus(response.Status),
		SessionRef:   response.SessionRef,
		Attachments:  response.Attachments,
		CreatedAt:    response.CreatedAt,
	}
}
