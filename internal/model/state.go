package model

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"skuqty/internal"
)

const stateVersion = 1

var errCorruptState = errors.New("corrupt model state")

// state is everything one training pass produces. It is replaced as a whole
// and never modified after it is published.
type state struct {
	vectorizer *Vectorizer
	container  *Forest
	weight     *Forest
	pieces     *Forest
	packs      *Forest
	corpus     []internal.TrainingExample
	trainedAt  time.Time
}

type stateBlob struct {
	Version    int                        `json:"version"`
	TrainedAt  time.Time                  `json:"trainedAt"`
	Vectorizer *Vectorizer                `json:"vectorizer"`
	Container  *Forest                    `json:"container"`
	Weight     *Forest                    `json:"weight"`
	Pieces     *Forest                    `json:"pieces"`
	Packs      *Forest                    `json:"packs"`
	Corpus     []internal.TrainingExample `json:"corpus"`
}

func encodeState(st *state) ([]byte, error) {
	payload, err := json.Marshal(stateBlob{
		Version:    stateVersion,
		TrainedAt:  st.trainedAt,
		Vectorizer: st.vectorizer,
		Container:  st.container,
		Weight:     st.weight,
		Pieces:     st.pieces,
		Packs:      st.packs,
		Corpus:     st.corpus,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeState(blob []byte) (*state, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptState, err)
	}
	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptState, err)
	}

	var b stateBlob
	if err := json.Unmarshal(payload, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptState, err)
	}
	if b.Version != stateVersion {
		return nil, fmt.Errorf("%w: version %d", errCorruptState, b.Version)
	}
	if b.Vectorizer == nil || len(b.Vectorizer.Terms) != len(b.Vectorizer.IDF) {
		return nil, fmt.Errorf("%w: vectorizer", errCorruptState)
	}
	for name, f := range map[string]*Forest{"container": b.Container, "weight": b.Weight, "pieces": b.Pieces, "packs": b.Packs} {
		if err := validateForest(f, len(b.Vectorizer.Terms)); err != nil {
			return nil, fmt.Errorf("%w: %s forest: %v", errCorruptState, name, err)
		}
	}
	b.Vectorizer.prepare()

	return &state{
		vectorizer: b.Vectorizer,
		container:  b.Container,
		weight:     b.Weight,
		pieces:     b.Pieces,
		packs:      b.Packs,
		corpus:     b.Corpus,
		trainedAt:  b.TrainedAt,
	}, nil
}

// validateForest checks that every tree walk terminates: children always
// sit after their parent and inside the node slice.
func validateForest(f *Forest, features int) error {
	if f == nil || len(f.Trees) == 0 {
		return errors.New("no trees")
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				continue
			}
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d has bad children", ti, ni)
			}
			if n.Feature < 0 || n.Feature >= features {
				return fmt.Errorf("tree %d node %d has bad feature", ti, ni)
			}
		}
	}
	return nil
}
