//go:build e2e && unix

package e2e

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchAndSelect(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.SeePlain("searchselect (controlled)"), "title")
	require.True(t, tf.SeePlain("> Candidate #0 - "), "initial results")

	mark := tf.Mark()
	require.NoError(t, tf.Type("user42@"))
	require.True(t, tf.SeePlainAfter(mark, "> Candidate #42 - "), "filtered results")

	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("cand-0042"), "selection panel")

	// The selection is persisted for the next run
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(tf.ConfigPath())
		return err == nil && strings.Contains(string(data), "cand-0042")
	}, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, tf.SendKeys(KeyCtrlC))
	require.NoError(t, tf.WaitExit(3*time.Second))
}

func TestLastSelectionIsRestored(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.WriteConfig("version = 1\n\n[ui]\ncontrolled = true\nlast_selection = 'cand-0007'\n"))
	require.NoError(t, tf.StartApp())

	require.True(t, tf.SeePlain("user7@example.com"), "restored selection panel")
	require.True(t, tf.SeePlain("> Candidate #7 - "), "list opens on the restored label")
}

func TestErrorRecovery(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--uncontrolled"))
	require.True(t, tf.SeePlain("> Candidate #0 - "))

	mark := tf.Mark()
	require.NoError(t, tf.Type("error"))
	require.True(t, tf.SeePlainAfter(mark, "Error occurred"), "error text")

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyCtrlU))
	require.True(t, tf.SeePlainAfter(mark, "> Candidate #0 - "), "results after clearing the query")

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyCtrlR))
	require.True(t, tf.SeePlainAfter(mark, "> Candidate #0 - "), "refresh keeps results")
}

func TestEscapeDiscardsEdits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--uncontrolled"))
	require.True(t, tf.SeePlain("> Candidate #0 - "))

	require.NoError(t, tf.SendKeys(KeyDown+KeyDown+KeyEnter))
	require.True(t, tf.SeePlain("cand-0002"))

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyDown))
	require.NoError(t, tf.Type("zzz"))
	require.True(t, tf.SeePlainAfter(mark, "No results"))

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEsc))
	require.True(t, tf.SeePlainAfter(mark, "Candidate #2 - "), "input restored to the selection")
}
