package report

import (
	"encoding/json"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// Filters narrows a detailed time-entry listing. Each field is one
// recognized filter kind; anything else in the incoming document is
// rejected rather than passed through to the query engine.
type Filters struct {
	// Customer restricts to projects of the given customer(s).
	Customer *domain.Selector `json:"customer,omitempty"`

	// State filters the entry workflow state. The value "new" also
	// matches entries that have no state field yet.
	State *string `json:"state,omitempty"`

	// Date is a single day in the configured date format, expanded to a
	// whole-day range.
	Date *string `json:"date,omitempty"`

	// Hours matches an exact hour value; string input is coerced.
	Hours *NumberString `json:"hours,omitempty"`
}

// NumberString decodes from either a JSON number or a numeric string.
type NumberString string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = NumberString(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = NumberString(f.String())
	return nil
}

// UnmarshalJSON rejects unrecognized filter keys.
func (f *Filters) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		switch key {
		case "customer", "state", "date", "hours":
		default:
			return errors.BadRequest("unknown filter field " + strconv.Quote(key))
		}
	}

	type alias Filters
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = Filters(a)
	return nil
}

// Empty reports whether no filter kind is set.
func (f *Filters) Empty() bool {
	return f == nil || (f.Customer == nil && f.State == nil && f.Date == nil && f.Hours == nil)
}

// translate converts the filter specification into a query document.
// customerIDs is the pre-resolved project scope for the customer filter.
func (f *Filters) translate(customerIDs []string, dateLayout string) (bson.M, error) {
	out := bson.M{}

	if f.Customer != nil {
		out["projectId"] = bson.M{"$in": customerIDs}
	}

	if f.State != nil {
		if *f.State == "new" {
			// entries saved before states existed carry no state field
			out["$or"] = bson.A{
				bson.M{"state": bson.M{"$exists": false}},
				bson.M{"state": "new"},
			}
		} else {
			out["state"] = *f.State
		}
	}

	if f.Date != nil {
		day, err := time.ParseInLocation(dateLayout, *f.Date, time.UTC)
		if err != nil {
			return nil, errors.BadRequest("invalid date filter value")
		}
		out["date"] = bson.M{
			"$gte": day,
			"$lte": day.Add(24*time.Hour - time.Nanosecond),
		}
	}

	if f.Hours != nil {
		hours, err := strconv.ParseFloat(string(*f.Hours), 64)
		if err != nil {
			return nil, errors.BadRequest("invalid hours filter value")
		}
		out["hours"] = hours
	}

	return out, nil
}
