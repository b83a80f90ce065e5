package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Neumenon/elucidator/capi"
	"github.com/Neumenon/elucidator/codec"
	"github.com/Neumenon/elucidator/spec"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Drive a single in-process session through register/insert/query",
}

var sessionDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the canonical state(hits, misses) insert/query scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := backendFromName(cfg.DefaultBackend)

		h, status, errHandle := api.NewSession(backend)
		if status != capi.StatusOK {
			return reportAPIError("new_session", status, errHandle)
		}
		defer api.ReleaseSession(h)

		status, errHandle = api.AddSpecToSession(h, "state", "hits: u64, misses: u64")
		if status != capi.StatusOK {
			return reportAPIError("add_spec_to_session", status, errHandle)
		}

		blob, err := codec.Encode(mustParseMembers("hits: u64, misses: u64"), map[string]codec.Value{
			"hits":   codec.NewU64(42),
			"misses": codec.NewU64(7),
		})
		if err != nil {
			return err
		}

		bbox := capi.BoundingBox{
			Min: capi.Point{X: 0, Y: 0, Z: 0, T: 5},
			Max: capi.Point{X: 0, Y: 0, Z: 0, T: 5},
		}
		status, errHandle = api.InsertMetadataInSession(h, bbox, "state", blob)
		if status != capi.StatusOK {
			return reportAPIError("insert_metadata_in_session", status, errHandle)
		}

		query := capi.BoundingBox{
			Min: capi.Point{X: 0, Y: 0, Z: 0, T: 0},
			Max: capi.Point{X: 0, Y: 0, Z: 0, T: 4},
		}
		head, status, errHandle := api.GetMetadataInBB(h, query, "state", cfg.DefaultEpsilon)
		if status != capi.StatusOK {
			return reportAPIError("get_metadata_in_bb", status, errHandle)
		}
		pterm.Info.Printfln("query with epsilon=%.1f returned %d result(s)", cfg.DefaultEpsilon, countBufNodes(head))
		capi.FreeBufNodes(head)

		head, status, errHandle = api.GetMetadataInBB(h, query, "state", 1.0)
		if status != capi.StatusOK {
			return reportAPIError("get_metadata_in_bb", status, errHandle)
		}
		pterm.Success.Printfln("query with epsilon=1.0 returned %d result(s)", countBufNodes(head))
		printBufList(head)
		capi.FreeBufNodes(head)

		api.PrintSession(h)
		api.PrintDesignation(h, "state")
		return nil
	},
}

var (
	queryDesignation string
	queryMembers     string
	queryBlobHex     string
	queryMin         string
	queryMax         string
	queryWindowMin   string
	queryWindowMax   string
	queryEpsilon     float64
)

var sessionQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Register a designation, insert one blob, and query it back",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := backendFromName(cfg.DefaultBackend)

		h, status, errHandle := api.NewSession(backend)
		if status != capi.StatusOK {
			return reportAPIError("new_session", status, errHandle)
		}
		defer api.ReleaseSession(h)

		status, errHandle = api.AddSpecToSession(h, queryDesignation, queryMembers)
		if status != capi.StatusOK {
			return reportAPIError("add_spec_to_session", status, errHandle)
		}

		blob, err := hex.DecodeString(strings.TrimSpace(queryBlobHex))
		if err != nil {
			return fmt.Errorf("decoding --blob: %w", err)
		}

		insertBox, err := parseBox(queryMin, queryMax)
		if err != nil {
			return err
		}
		status, errHandle = api.InsertMetadataInSession(h, insertBox, queryDesignation, blob)
		if status != capi.StatusOK {
			return reportAPIError("insert_metadata_in_session", status, errHandle)
		}

		windowBox, err := parseBox(queryWindowMin, queryWindowMax)
		if err != nil {
			return err
		}
		head, status, errHandle := api.GetMetadataInBB(h, windowBox, queryDesignation, queryEpsilon)
		if status != capi.StatusOK {
			return reportAPIError("get_metadata_in_bb", status, errHandle)
		}
		defer capi.FreeBufNodes(head)

		count := countBufNodes(head)
		pterm.Success.Printfln("%d result(s)", count)
		printBufList(head)
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionDemoCmd)

	sessionQueryCmd.Flags().StringVar(&queryDesignation, "designation", "state", "designation to register and query")
	sessionQueryCmd.Flags().StringVar(&queryMembers, "members", "hits: u64, misses: u64", "member-list text for the designation")
	sessionQueryCmd.Flags().StringVar(&queryBlobHex, "blob", "", "hex-encoded blob bytes to insert")
	sessionQueryCmd.Flags().StringVar(&queryMin, "insert-min", "0,0,0,0", "bounding box min as x,y,z,t")
	sessionQueryCmd.Flags().StringVar(&queryMax, "insert-max", "0,0,0,0", "bounding box max as x,y,z,t")
	sessionQueryCmd.Flags().StringVar(&queryWindowMin, "query-min", "0,0,0,0", "query bounding box min as x,y,z,t")
	sessionQueryCmd.Flags().StringVar(&queryWindowMax, "query-max", "0,0,0,0", "query bounding box max as x,y,z,t")
	sessionQueryCmd.Flags().Float64Var(&queryEpsilon, "epsilon", 0.0, "containment slack")
	sessionCmd.AddCommand(sessionQueryCmd)
}

func backendFromName(name string) capi.Backend {
	if name == "rtree" {
		return capi.BackendRTree
	}
	return capi.BackendBulkScan
}

func parseBox(minText, maxText string) (capi.BoundingBox, error) {
	min, err := parsePoint(minText)
	if err != nil {
		return capi.BoundingBox{}, fmt.Errorf("parsing min point %q: %w", minText, err)
	}
	max, err := parsePoint(maxText)
	if err != nil {
		return capi.BoundingBox{}, fmt.Errorf("parsing max point %q: %w", maxText, err)
	}
	return capi.BoundingBox{Min: min, Max: max}, nil
}

func parsePoint(text string) (capi.Point, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 4 {
		return capi.Point{}, fmt.Errorf("expected 4 comma-separated coordinates, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return capi.Point{}, err
		}
		vals[i] = v
	}
	return capi.Point{X: vals[0], Y: vals[1], Z: vals[2], T: vals[3]}, nil
}

func countBufNodes(head *capi.BufNode) int {
	n := 0
	for node := head; node != nil; node = node.Next {
		n++
	}
	return n
}

func printBufList(head *capi.BufNode) {
	i := 0
	for node := head; node != nil; node = node.Next {
		pterm.Println(pterm.LightCyan(fmt.Sprintf("  [%d] %s", i, hex.EncodeToString(node.Buf))))
		i++
	}
}

func reportAPIError(op string, status capi.Status, h capi.ErrorHandle) error {
	msg, ok := api.GetErrorString(h)
	if !ok {
		return fmt.Errorf("%s failed: status %v", op, status)
	}
	return fmt.Errorf("%s failed: %s", op, msg)
}

func mustParseMembers(text string) *spec.Specification {
	s, err := spec.NewSpecification("state", mustMembers(text), "")
	if err != nil {
		panic(err)
	}
	return s
}

func mustMembers(text string) []spec.MemberSpec {
	members, err := spec.ParseMembers(text)
	if err != nil {
		panic(err)
	}
	return members
}
