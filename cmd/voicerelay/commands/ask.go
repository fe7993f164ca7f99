// ABOUTME: Ask command runs a single agent request from the terminal
// ABOUTME: Supports text and audio files, with optional streaming output
package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/voicerelay/internal/agent"
	"github.com/harper/voicerelay/internal/models"
	"github.com/harper/voicerelay/internal/stream"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	var (
		audioFile      string
		mimeType       string
		conversationID string
		storeIDs       []string
		streamOut      bool
	)

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Ask the agent a question",
		Long: `Ask the agent a question

The supervisor classifies the request and routes it to the direct or
retrieval-augmented sub-agent. Pass --audio to transcribe a file instead
of providing text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) > 0 {
				message = args[0]
			}
			return runAsk(cmd, message, audioFile, mimeType, conversationID, storeIDs, streamOut)
		},
		Example: `  # Ask a question
  voicerelay ask "What is the capital of France?"

  # Ask with retrieval over a vector store
  voicerelay ask "Summarize the Q3 report" --store vs_reports

  # Transcribe and route an audio file
  voicerelay ask --audio question.mp3

  # Stream the answer as it is generated
  voicerelay ask "Tell me a story" --stream`,
	}

	cmd.Flags().StringVar(&audioFile, "audio", "", "audio file to transcribe and route")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type of the audio file")
	cmd.Flags().StringVar(&conversationID, "conversation", "", "conversation id to continue")
	cmd.Flags().StringSliceVar(&storeIDs, "store", nil, "vector store ids for retrieval")
	cmd.Flags().BoolVar(&streamOut, "stream", false, "stream the response as it is generated")
	return cmd
}

func runAsk(cmd *cobra.Command, message, audioFile, mimeType, conversationID string, storeIDs []string, streamOut bool) error {
	input, err := askInput(message, audioFile, mimeType)
	if err != nil {
		return err
	}

	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.Close()

	params := agent.Params{VectorStoreIDs: storeIDs}
	ctx := context.Background()

	if streamOut {
		sink := &terminalSink{cmd: cmd}
		return st.coordinator.Run(ctx, stream.Request{
			ConversationID: conversationID,
			Input:          input,
			Params:         params,
		}, sink)
	}

	result, err := st.supervisor.Run(ctx, conversationID, input, params)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Conversation: %s\n", result.ConversationID)
		fmt.Fprintf(cmd.OutOrStdout(), "Agent:        %s\n\n", result.Agent)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return nil
}

// askInput builds the request input from the message or audio flag.
func askInput(message, audioFile, mimeType string) (models.Input, error) {
	if audioFile != "" {
		data, err := os.ReadFile(audioFile)
		if err != nil {
			return nil, fmt.Errorf("read audio file: %w", err)
		}
		if mimeType == "" {
			mimeType = mimeFromFilename(audioFile)
		}
		return models.SingleAudioInput{Data: data, MIMEType: mimeType}, nil
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("provide a message or --audio file")
	}
	return models.TextInput{Text: message}, nil
}

// mimeFromFilename guesses an audio MIME type from the file extension.
func mimeFromFilename(name string) string {
	switch {
	case strings.HasSuffix(name, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(name, ".webm"):
		return "audio/webm"
	case strings.HasSuffix(name, ".ogg"):
		return "audio/ogg"
	case strings.HasSuffix(name, ".m4a"):
		return "audio/mp4"
	case strings.HasSuffix(name, ".flac"):
		return "audio/flac"
	default:
		return "audio/mpeg"
	}
}

// terminalSink prints stream events for interactive use.
type terminalSink struct {
	cmd *cobra.Command
}

func (s *terminalSink) Send(ev stream.Event) error {
	out := s.cmd.OutOrStdout()
	switch ev.Type {
	case stream.EventConversation:
		if !quiet {
			if p, ok := ev.Data.(stream.ConversationPayload); ok {
				fmt.Fprintf(out, "Conversation: %s\n\n", p.ConversationID)
			}
		}
	case stream.EventTranscript:
		if !quiet {
			if p, ok := ev.Data.(stream.TranscriptPayload); ok {
				fmt.Fprintf(out, "Transcript: %s\n\n", p.Text)
			}
		}
	case stream.EventTextDelta:
		if p, ok := ev.Data.(stream.DeltaPayload); ok {
			fmt.Fprint(out, p.Text)
		}
	case stream.EventFinal:
		fmt.Fprintln(out)
	case stream.EventError:
		if p, ok := ev.Data.(stream.ErrorPayload); ok {
			fmt.Fprintf(s.cmd.ErrOrStderr(), "\nError: %s\n", p.Message)
		}
	}
	return nil
}
