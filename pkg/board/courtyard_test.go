package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boardcheck/internal/testutil"
	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

func TestBuildCourtyard(t *testing.T) {
	mm := testutil.MM

	tests := []struct {
		name      string
		fp        *board.Footprint
		wantFront int
		wantBack  int
		wantEmpty bool
		wantErr   error
	}{
		{
			name:      "front rectangle",
			fp:        testutil.RectFootprint("U1", 0, 0, 10, 10),
			wantFront: 1,
		},
		{
			name: "both sides",
			fp: testutil.Footprint("U2", append(
				testutil.RectOutline(board.LayerFrontCourtyard, 0, 0, mm(5), mm(5)),
				testutil.RectOutline(board.LayerBackCourtyard, 0, 0, mm(3), mm(3))...,
			)...),
			wantFront: 1,
			wantBack:  1,
		},
		{
			name:      "silkscreen only",
			fp:        testutil.BareFootprint("U3"),
			wantEmpty: true,
		},
		{
			name:    "open outline",
			fp:      testutil.OpenFootprint("U4", 0, 0, 10, 10),
			wantErr: geom.ErrNotClosed,
		},
		{
			name: "open back outline fails the whole build",
			fp: testutil.Footprint("U5", append(
				testutil.RectOutline(board.LayerFrontCourtyard, 0, 0, mm(5), mm(5)),
				testutil.RectOutline(board.LayerBackCourtyard, 0, 0, mm(3), mm(3))[:2]...,
			)...),
			wantErr: geom.ErrNotClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cy, err := board.BuildCourtyard(tt.fp, board.DefaultOutlineOptions())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.fp.Reference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmpty, cy.IsEmpty())
			assert.Equal(t, tt.wantFront, cy.Front.OutlineCount())
			assert.Equal(t, tt.wantBack, cy.Back.OutlineCount())
			assert.Same(t, cy.Back, cy.OnSide(board.Back))
		})
	}
}

func TestBuildCourtyard_IgnoresOtherLayers(t *testing.T) {
	fp := testutil.RectFootprint("U1", 0, 0, 10, 10)
	// An open silkscreen outline must not affect the courtyard.
	fp.Graphics = append(fp.Graphics, testutil.RectOutline(board.LayerFrontSilk, 0, 0, 1, 1)[:2]...)

	cy, err := board.BuildCourtyard(fp, board.DefaultOutlineOptions())
	require.NoError(t, err)
	assert.Equal(t, geom.NewRect(geom.Pt(0, 0), geom.Pt(testutil.MM(10), testutil.MM(10))), cy.Front.BBoxFromCaches())
}
