package transport

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/arangodb/logger"
)

const (
	instrumentationName = "github.com/kbukum/arangodb/transport"
	spanName            = "arangodb.request"
)

// Attribute keys recorded on spans and metrics.
const (
	attrDBSystem   = attribute.Key("db.system")
	attrDBName     = attribute.Key("db.namespace")
	attrMethod     = attribute.Key("http.request.method")
	attrPath       = attribute.Key("url.path")
	attrStatus     = attribute.Key("http.response.status_code")
	attrRequestID  = attribute.Key("arangodb.request_id")
	attrTransport  = attribute.Key("arangodb.transport")
	attrAttempts   = attribute.Key("arangodb.attempts")
	attrErrorType  = attribute.Key("error.type")
	dbSystemArango = "arangodb"
)

type instruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(m metric.Meter) (*instruments, error) {
	requests, err := m.Int64Counter("arangodb.client.requests",
		metric.WithDescription("Number of requests sent to the server"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	duration, err := m.Float64Histogram("arangodb.client.request.duration",
		metric.WithDescription("Duration of requests including retries"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &instruments{requests: requests, duration: duration}, nil
}

func (h *HTTP) startSpan(ctx context.Context, req *Request, requestID string) (context.Context, trace.Span) {
	return h.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attrDBSystem.String(dbSystemArango),
			attrDBName.String(h.config.Database),
			attrMethod.String(req.method),
			attrPath.String(req.path),
			attrRequestID.String(requestID),
			attrTransport.String(h.config.Name),
		),
	)
}

// observe records the outcome of Do on the span, the metrics and the log.
func (h *HTTP) observe(ctx context.Context, span trace.Span, req *Request, requestID string,
	resp *Response, err error, attempts int, elapsed time.Duration) {
	attrs := []attribute.KeyValue{
		attrTransport.String(h.config.Name),
		attrMethod.String(req.method),
	}
	span.SetAttributes(attrAttempts.Int(attempts))

	log := h.log.WithContext(ctx)
	fields := logger.Fields(
		logger.FieldMethod, req.method,
		logger.FieldPath, req.path,
		logger.FieldRequestID, requestID,
		logger.FieldAttempt, attempts,
		logger.FieldDuration, elapsed.Milliseconds(),
	)

	if err != nil {
		code := "unknown"
		if te, ok := AsError(err); ok {
			code = te.Code.String()
		}
		attrs = append(attrs, attrErrorType.String(code))
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		fields[logger.FieldError] = err.Error()
		log.Warn("request failed", fields)
	} else {
		attrs = append(attrs, attrStatus.Int(resp.StatusCode))
		span.SetAttributes(attrStatus.Int(resp.StatusCode))
		if resp.StatusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		}
		fields[logger.FieldStatus] = resp.StatusCode
		log.Debug("request completed", fields)
	}

	set := metric.WithAttributes(attrs...)
	h.metrics.requests.Add(ctx, 1, set)
	h.metrics.duration.Record(ctx, elapsed.Seconds(), set)
}
