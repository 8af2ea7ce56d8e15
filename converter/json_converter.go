package converter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/udecbot/horarios/model"
)

type JSONConverter struct {
	Pretty bool
}

func (j JSONConverter) Write(subjects model.SubjectMap, out string) error {
	if out == "" {
		return fmt.Errorf("--output can not be empty")
	}

	var ret []byte
	var err error
	if j.Pretty {
		ret, err = json.MarshalIndent(sorted(subjects), "", "  ")
	} else {
		ret, err = json.Marshal(sorted(subjects))
	}
	if err != nil {
		return err
	}

	return os.WriteFile(out, ret, 0644)
}
