package catalog

import "encoding/json"

func marshalRecord(rec record) ([]byte, error) {
	return json.Marshal(rec)
}

func unmarshalRecord(data []byte, rec *record) error {
	if err := json.Unmarshal(data, rec); err != nil {
		return err
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	return nil
}
