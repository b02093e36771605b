package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
)

// RecordLocationTrace implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordLocationTrace(ctx context.Context, req attendance.RecordTraceRequest) (attendance.TraceResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.TraceResponse{}, err
	}
	if err := s.resolveSubject(actor, &req.EmployeeID, &req.Timestamp); err != nil {
		return attendance.TraceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.TraceResponse{}, err
	}

	trace := attendance.LocationTrace{
		EmployeeID: req.EmployeeID,
		Date:       req.Timestamp.In(s.resolver.Location()).Format(record.DateLayout),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Timestamp:  req.Timestamp.UTC(),
	}
	if err := s.AttendanceRepository.CreateTrace(ctx, trace); err != nil {
		return attendance.TraceResponse{}, fmt.Errorf("failed to record location trace: %w", err)
	}

	return toTraceResponse(trace), nil
}

// ListLocationTraces implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListLocationTraces(ctx context.Context, employeeID, date string) (attendance.TraceListResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return attendance.TraceListResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	if _, err := s.authorizeEmployee(ctx, employeeID); err != nil {
		return attendance.TraceListResponse{}, err
	}

	traces, err := s.AttendanceRepository.ListTraces(ctx, employeeID)
	if err != nil {
		return attendance.TraceListResponse{}, fmt.Errorf("failed to list location traces: %w", err)
	}

	resp := attendance.TraceListResponse{
		EmployeeID: employeeID,
		Date:       date,
		Traces:     []attendance.TraceResponse{},
	}
	var path []utils.Coordinate
	for _, trace := range traces {
		if trace.Date != date {
			continue
		}
		resp.Traces = append(resp.Traces, toTraceResponse(trace))
		path = append(path, utils.Coordinate{Latitude: trace.Latitude, Longitude: trace.Longitude})
	}
	resp.DistanceMeters = utils.PathDistance(path)

	return resp, nil
}

func toTraceResponse(trace attendance.LocationTrace) attendance.TraceResponse {
	return attendance.TraceResponse{
		Latitude:  trace.Latitude,
		Longitude: trace.Longitude,
		Timestamp: trace.Timestamp.Format(time.RFC3339),
	}
}
