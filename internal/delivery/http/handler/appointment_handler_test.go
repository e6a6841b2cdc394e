package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"docspot-odonto/internal/delivery/dto"
	"docspot-odonto/internal/domain/entity"
	"docspot-odonto/internal/usecase"
	"docspot-odonto/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type fakeAppointmentUsecase struct {
	createFn        func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	listAllFn       func(ctx context.Context, status string) ([]dto.AppointmentResponse, error)
	listByDoctorFn  func(ctx context.Context, doctorID string) ([]dto.AppointmentResponse, error)
	listByPatientFn func(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error)
	reserveFn       func(ctx context.Context, id string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error)
	cancelFn        func(ctx context.Context, id string) error
}

func (f *fakeAppointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeAppointmentUsecase) ListAll(ctx context.Context, status string) ([]dto.AppointmentResponse, error) {
	return f.listAllFn(ctx, status)
}

func (f *fakeAppointmentUsecase) ListByDoctor(ctx context.Context, doctorID string) ([]dto.AppointmentResponse, error) {
	return f.listByDoctorFn(ctx, doctorID)
}

func (f *fakeAppointmentUsecase) ListByPatient(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error) {
	return f.listByPatientFn(ctx, patientID)
}

func (f *fakeAppointmentUsecase) Reserve(ctx context.Context, id string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.reserveFn(ctx, id, req)
}

func (f *fakeAppointmentUsecase) Cancel(ctx context.Context, id string) error {
	return f.cancelFn(ctx, id)
}

// appointmentRouter registers the appointment routes so mux path variables
// are populated the same way they are in production.
func appointmentRouter(fake *fakeAppointmentUsecase) *mux.Router {
	h := NewAppointmentHandler(fake, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/appointments", h.CreateAppointment).Methods(http.MethodPost)
	r.HandleFunc("/appointments", h.GetAppointments).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}/reserve", h.ReserveAppointment).Methods(http.MethodPost)
	r.HandleFunc("/appointments/{id}", h.CancelAppointment).Methods(http.MethodDelete)
	r.HandleFunc("/doctors/{id}/appointments", h.GetDoctorAppointments).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}/appointments", h.GetPatientAppointments).Methods(http.MethodGet)
	return r
}

func TestCreateAppointment(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		router := appointmentRouter(&fakeAppointmentUsecase{
			createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
				return &dto.AppointmentResponse{
					ID:         "apt_11111111",
					DoctorID:   req.DoctorID,
					DoctorName: "Dr. Sonrisa",
					Clinic:     "Smile Clinic",
					Service:    req.Service,
					Time:       req.Time,
					Date:       req.Date,
					Price:      req.Price,
					Commission: entity.DefaultCommission,
					Status:     string(entity.AppointmentStatusAvailable),
				}, nil
			},
		})

		body := `{"doctor_id":"doc_abc12345","service":"Limpieza","time":"10:00","date":"2026-09-01","price":50.0}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body)))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body)
		}

		var resp dto.AppointmentResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Status != "available" {
			t.Fatalf("status = %q, want available", resp.Status)
		}
		if resp.DoctorName != "Dr. Sonrisa" || resp.Clinic != "Smile Clinic" {
			t.Fatalf("doctor snapshot missing: %+v", resp)
		}
		if !resp.Price.Equal(decimal.NewFromFloat(50.0)) {
			t.Fatalf("price = %s, want 50", resp.Price)
		}
	})

	t.Run("UnknownDoctorIsNotFound", func(t *testing.T) {
		router := appointmentRouter(&fakeAppointmentUsecase{
			createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
				return nil, usecase.ErrDoctorNotFound
			},
		})

		body := `{"doctor_id":"doc_missing1","service":"Limpieza","time":"10:00","date":"2026-09-01","price":50.0}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body)))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestGetAppointments(t *testing.T) {
	var gotStatus string
	router := appointmentRouter(&fakeAppointmentUsecase{
		listAllFn: func(ctx context.Context, status string) ([]dto.AppointmentResponse, error) {
			gotStatus = status
			return []dto.AppointmentResponse{{ID: "apt_11111111"}}, nil
		},
	})

	t.Run("NoFilter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotStatus != "" {
			t.Fatalf("status filter = %q, want empty", gotStatus)
		}
	})

	t.Run("StatusFilterPassedThrough", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments?status=available", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotStatus != "available" {
			t.Fatalf("status filter = %q, want available", gotStatus)
		}
	})
}

func TestOwnerListings(t *testing.T) {
	router := appointmentRouter(&fakeAppointmentUsecase{
		listByDoctorFn: func(ctx context.Context, doctorID string) ([]dto.AppointmentResponse, error) {
			if doctorID != "doc_abc12345" {
				return nil, usecase.ErrDoctorNotFound
			}
			return []dto.AppointmentResponse{}, nil
		},
		listByPatientFn: func(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error) {
			if patientID != "pac_xyz78901" {
				return nil, usecase.ErrPatientNotFound
			}
			return []dto.AppointmentResponse{}, nil
		},
	})

	cases := []struct {
		name string
		path string
		want int
	}{
		{"DoctorFound", "/doctors/doc_abc12345/appointments", http.StatusOK},
		{"DoctorMissing", "/doctors/doc_nope/appointments", http.StatusNotFound},
		{"PatientFound", "/patients/pac_xyz78901/appointments", http.StatusOK},
		{"PatientMissing", "/patients/pac_nope/appointments", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestReserveAppointment(t *testing.T) {
	t.Run("Reserved", func(t *testing.T) {
		patientID := "pac_xyz78901"
		patientName := "Ana"
		paid := "paid"
		now := time.Now()

		router := appointmentRouter(&fakeAppointmentUsecase{
			reserveFn: func(ctx context.Context, id string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error) {
				return &dto.AppointmentResponse{
					ID:            id,
					Status:        string(entity.AppointmentStatusReserved),
					PatientID:     &patientID,
					PatientName:   &patientName,
					PaymentStatus: &paid,
					PaymentDate:   &now,
				}, nil
			},
		})

		body := `{"patient_id":"pac_xyz78901"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/apt_11111111/reserve", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
		}

		var resp dto.AppointmentResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID != "apt_11111111" {
			t.Fatalf("id = %q, path variable not forwarded", resp.ID)
		}
		if resp.Status != "reserved" || resp.PatientID == nil || resp.PatientName == nil || resp.PaymentStatus == nil || resp.PaymentDate == nil {
			t.Fatalf("reserved appointment missing patient/payment data: %+v", resp)
		}
	})

	t.Run("AlreadyReservedIsBadRequest", func(t *testing.T) {
		router := appointmentRouter(&fakeAppointmentUsecase{
			reserveFn: func(ctx context.Context, id string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error) {
				return nil, usecase.ErrAppointmentNotAvailable
			},
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/apt_11111111/reserve", strings.NewReader(`{"patient_id":"pac_other001"}`)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "not available") {
			t.Fatalf("missing detail message: %s", rec.Body)
		}
	})

	// A reservation that committed but could not be reloaded surfaces as an
	// internal error, never as a 404 for the already-taken slot
	t.Run("ReloadFailureIsServerError", func(t *testing.T) {
		router := appointmentRouter(&fakeAppointmentUsecase{
			reserveFn: func(ctx context.Context, id string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error) {
				return nil, fmt.Errorf("reload appointment %s after reservation: connection reset", id)
			},
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/apt_11111111/reserve", strings.NewReader(`{"patient_id":"pac_xyz78901"}`)))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("MissingAppointmentIsNotFound", func(t *testing.T) {
		router := appointmentRouter(&fakeAppointmentUsecase{
			reserveFn: func(ctx context.Context, id string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error) {
				return nil, usecase.ErrAppointmentNotFound
			},
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/apt_missing1/reserve", strings.NewReader(`{"patient_id":"pac_xyz78901"}`)))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	// Two simultaneous reservations of the same slot: the status guard is
	// part of the write, so exactly one caller may win.
	t.Run("ConcurrentReservationsSingleWinner", func(t *testing.T) {
		var mu sync.Mutex
		status := entity.AppointmentStatusAvailable

		router := appointmentRouter(&fakeAppointmentUsecase{
			reserveFn: func(ctx context.Context, id string, req *dto.ReserveAppointmentRequest) (*dto.AppointmentResponse, error) {
				mu.Lock()
				defer mu.Unlock()
				if status != entity.AppointmentStatusAvailable {
					return nil, usecase.ErrAppointmentNotAvailable
				}
				status = entity.AppointmentStatusReserved
				return &dto.AppointmentResponse{ID: id, Status: string(status), PatientID: &req.PatientID}, nil
			},
		})

		codes := make(chan int, 2)
		var wg sync.WaitGroup
		for _, patient := range []string{"pac_xyz78901", "pac_abc23456"} {
			wg.Add(1)
			go func(patient string) {
				defer wg.Done()
				rec := httptest.NewRecorder()
				body := `{"patient_id":"` + patient + `"}`
				router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/apt_11111111/reserve", strings.NewReader(body)))
				codes <- rec.Code
			}(patient)
		}
		wg.Wait()
		close(codes)

		var ok, conflict int
		for code := range codes {
			switch code {
			case http.StatusOK:
				ok++
			case http.StatusBadRequest:
				conflict++
			default:
				t.Fatalf("unexpected status %d", code)
			}
		}
		if ok != 1 || conflict != 1 {
			t.Fatalf("want exactly one winner, got %d successes and %d conflicts", ok, conflict)
		}
	})
}

func TestCancelAppointment(t *testing.T) {
	router := appointmentRouter(&fakeAppointmentUsecase{
		cancelFn: func(ctx context.Context, id string) error {
			if id != "apt_11111111" {
				return usecase.ErrAppointmentNotFound
			}
			return nil
		},
	})

	t.Run("NoContent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/appointments/apt_11111111", nil))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("expected empty body, got %s", rec.Body)
		}
	})

	t.Run("MissingIsNotFound", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/appointments/apt_missing1", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
